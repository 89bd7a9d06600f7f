package main_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents the core API surface", func() {
		for _, path := range []string{
			"/auth/login",
			"/auth/logout",
			"/dashboard",
			"/leave-requests",
			"/leave-requests/{id}",
			"/admin/leave-requests/{id}/approve",
			"/admin/leave-requests/{id}/reject",
			"/admin/employees",
			"/admin/employees/{id}/reset-token",
			"/admin/reports/usage",
			"/admin/audit-logs",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("declares the session cookie security scheme", func() {
		scheme, ok := doc.Components.SecuritySchemes["sessionCookie"]
		Expect(ok).To(BeTrue())
		Expect(scheme.Value.In).To(Equal("cookie"))
	})
})
