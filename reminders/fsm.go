package reminders

import (
	"github.com/dominikbraun/graph"
)

// The status machine is a directed graph. Completed and cancelled are
// terminal; missed reminders can still be completed or cancelled.
var statusGraph = buildStatusGraph()

func buildStatusGraph() graph.Graph[string, string] {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, status := range Statuses {
		_ = g.AddVertex(status)
	}

	transitions := [][2]string{
		{StatusUpcoming, StatusCompleted},
		{StatusUpcoming, StatusCancelled},
		{StatusUpcoming, StatusMissed},
		{StatusMissed, StatusCompleted},
		{StatusMissed, StatusCancelled},
	}
	for _, t := range transitions {
		_ = g.AddEdge(t[0], t[1])
	}

	return g
}

// CanTransition reports whether the status machine allows moving a reminder
// from one status to another.
func CanTransition(from, to string) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return false
	}
	_, err := statusGraph.Edge(from, to)
	return err == nil
}

// AllowedTransitions returns the statuses reachable from the given status.
func AllowedTransitions(from string) []string {
	result := make([]string, 0, len(Statuses))
	adjacency, err := statusGraph.AdjacencyMap()
	if err != nil {
		return result
	}
	for to := range adjacency[from] {
		result = append(result, to)
	}
	return result
}
