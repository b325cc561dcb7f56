package tips_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/carewell/portal/pointer"
	dbTest "github.com/carewell/portal/store/test"
	"github.com/carewell/portal/tips"
	tipsTest "github.com/carewell/portal/tips/test"
)

var _ = Describe("Tips Repository", func() {
	var repo tips.Service

	BeforeEach(func() {
		var err error
		repo, err = tips.NewRepository(dbTest.GetTestDatabase())
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())
	})

	AfterEach(func() {
		err := dbTest.GetTestDatabase().Collection("healthTips").Drop(context.Background())
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Create", func() {
		It("returns the created tip with an id", func() {
			tip := tipsTest.RandomTip()
			tip.Id = nil

			result, err := repo.Create(context.Background(), tip)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Id).ToNot(BeNil())
			Expect(result.CreatedTime).ToNot(BeZero())
		})
	})

	Describe("Random", func() {
		It("returns not found when no tips exist", func() {
			_, err := repo.Random(context.Background())
			Expect(err).To(MatchError(tips.ErrNotFound))
		})

		It("returns one of the active tips", func() {
			titles := map[string]struct{}{}
			for i := 0; i < 3; i++ {
				tip := tipsTest.RandomTip()
				tip.Id = nil
				created, err := repo.Create(context.Background(), tip)
				Expect(err).ToNot(HaveOccurred())
				titles[*created.Title] = struct{}{}
			}

			result, err := repo.Random(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(titles).To(HaveKey(*result.Title))
		})

		It("never returns inactive tips", func() {
			inactive := tipsTest.RandomTip()
			inactive.Id = nil
			inactive.IsActive = pointer.FromAny(false)
			_, err := repo.Create(context.Background(), inactive)
			Expect(err).ToNot(HaveOccurred())

			_, err = repo.Random(context.Background())
			Expect(err).To(MatchError(tips.ErrNotFound))
		})
	})
})
