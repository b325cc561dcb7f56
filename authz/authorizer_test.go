package authz_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/carewell/portal/authz"
)

var _ = Describe("Request Authorizer", func() {
	var authorizer authz.RequestAuthorizer

	BeforeEach(func() {
		var err error
		authorizer, err = authz.NewRequestAuthorizer(zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	input := func(path []string, role string) map[string]interface{} {
		in := map[string]interface{}{
			"path":   path,
			"method": "GET",
		}
		if role != "" {
			in["auth"] = map[string]interface{}{
				"subjectId": "1234567890",
				"role":      role,
			}
		}
		return in
	}

	It("allows patients on patient routes", func() {
		err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "patient", "dashboard"}, "patient"))
		Expect(err).ToNot(HaveOccurred())
	})

	It("denies patients on provider routes", func() {
		err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "provider", "dashboard"}, "patient"))
		Expect(err).To(MatchError(authz.ErrUnauthorized))
	})

	It("allows providers on provider routes", func() {
		err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "provider", "patients"}, "provider"))
		Expect(err).ToNot(HaveOccurred())
	})

	It("denies providers on patient routes", func() {
		err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "patient", "metrics"}, "provider"))
		Expect(err).To(MatchError(authz.ErrUnauthorized))
	})

	It("allows any authenticated subject on auth routes", func() {
		for _, role := range []string{"patient", "provider", "admin"} {
			err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "auth", "me"}, role))
			Expect(err).ToNot(HaveOccurred())
		}
	})

	It("allows admins everywhere", func() {
		err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "provider", "dashboard"}, "admin"))
		Expect(err).ToNot(HaveOccurred())

		err = authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "patient", "dashboard"}, "admin"))
		Expect(err).ToNot(HaveOccurred())
	})

	It("denies unauthenticated requests", func() {
		err := authorizer.EvaluatePolicy(context.Background(), input([]string{"v1", "patient", "dashboard"}, ""))
		Expect(err).To(MatchError(authz.ErrUnauthorized))
	})
})
