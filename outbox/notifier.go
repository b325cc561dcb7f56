package outbox

import (
	"context"
	"sync"

	"github.com/eapache/queue"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/carewell/portal/store"
)

// Notifier persists events and delivers them asynchronously through the
// registered dispatcher. Delivery is best effort; failures are logged and the
// event stays unprocessed.
type Notifier struct {
	dispatcher Dispatcher
	logger     *zap.SugaredLogger
	repo       Repository

	mu      sync.Mutex
	pending *queue.Queue
	wake    chan struct{}
	done    chan struct{}
}

func NewNotifier(repo Repository, dispatcher Dispatcher, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) *Notifier {
	notifier := &Notifier{
		dispatcher: dispatcher,
		logger:     logger,
		repo:       repo,
		pending:    queue.New(),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go notifier.loop()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(notifier.done)
			return nil
		},
	})

	return notifier
}

// Publish persists the event and queues it for delivery.
func (n *Notifier) Publish(ctx context.Context, event Event) error {
	created, err := n.repo.Create(ctx, event)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.pending.Add(*created)
	n.mu.Unlock()

	select {
	case n.wake <- struct{}{}:
	default:
	}

	return nil
}

func (n *Notifier) loop() {
	for {
		select {
		case <-n.done:
			return
		case <-n.wake:
			n.drain()
		}
	}
}

func (n *Notifier) drain() {
	for {
		n.mu.Lock()
		if n.pending.Length() == 0 {
			n.mu.Unlock()
			return
		}
		event := n.pending.Remove().(Event)
		n.mu.Unlock()

		ctx := store.NewDbContext()
		if err := n.dispatcher.Dispatch(ctx, event); err != nil {
			n.logger.Errorw("error dispatching outbox event", "eventId", event.Id, "eventType", event.EventType, zap.Error(err))
			continue
		}
		if event.Id != nil {
			if err := n.repo.MarkProcessed(ctx, *event.Id); err != nil {
				n.logger.Errorw("error marking outbox event as processed", "eventId", event.Id, zap.Error(err))
			}
		}
	}
}
