package assignment_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/assignment"
)

func TestAssignment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assignment Suite")
}

var _ = Describe("Collection", func() {
	var c *assignment.Collection

	BeforeEach(func() {
		c = assignment.NewCollection(assignment.KindDivision)
	})

	Describe("Add", func() {
		It("should mark the first entry primary automatically", func() {
			Expect(c.Add("documentation", "Documentation")).To(BeTrue())

			primary, ok := c.Primary()
			Expect(ok).To(BeTrue())
			Expect(primary.ID).To(Equal("documentation"))
		})

		It("should not mark later entries primary", func() {
			c.Add("documentation", "Documentation")
			c.Add("it-systems", "IT Systems")

			entries := c.Entries()
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].IsPrimary).To(BeTrue())
			Expect(entries[1].IsPrimary).To(BeFalse())
		})

		It("should ignore duplicate ids", func() {
			Expect(c.Add("documentation", "Documentation")).To(BeTrue())
			Expect(c.Add("documentation", "Documentation")).To(BeFalse())
			Expect(c.Len()).To(Equal(1))
		})

		It("should carry the owning division on office entries", func() {
			offices := assignment.NewCollection(assignment.KindOffice)
			division := "documentation"
			offices.AddWithDivision("doc-registry", "Registry", &division)

			entries := offices.Entries()
			Expect(entries[0].DivisionID).NotTo(BeNil())
			Expect(*entries[0].DivisionID).To(Equal("documentation"))
		})
	})

	Describe("Remove", func() {
		It("should not promote another entry when the primary is removed", func() {
			c.Add("documentation", "Documentation")
			c.Add("it-systems", "IT Systems")

			Expect(c.Remove("documentation")).To(BeTrue())

			_, ok := c.Primary()
			Expect(ok).To(BeFalse())
			Expect(c.Len()).To(Equal(1))
		})

		It("should report false for absent ids", func() {
			Expect(c.Remove("nonexistent")).To(BeFalse())
		})
	})

	Describe("SetPrimary", func() {
		BeforeEach(func() {
			c.Add("documentation", "Documentation")
			c.Add("it-systems", "IT Systems")
			c.Add("human-resources", "Human Resources")
		})

		It("should clear the flag everywhere else", func() {
			Expect(c.SetPrimary("it-systems")).To(BeTrue())

			for _, e := range c.Entries() {
				Expect(e.IsPrimary).To(Equal(e.ID == "it-systems"))
			}
		})

		It("should be a no-op for absent ids", func() {
			Expect(c.SetPrimary("nonexistent")).To(BeFalse())

			primary, ok := c.Primary()
			Expect(ok).To(BeTrue())
			Expect(primary.ID).To(Equal("documentation"))
		})
	})

	Describe("Entries", func() {
		It("should return a copy the caller cannot mutate through", func() {
			c.Add("documentation", "Documentation")

			entries := c.Entries()
			entries[0].IsPrimary = false

			primary, ok := c.Primary()
			Expect(ok).To(BeTrue())
			Expect(primary.ID).To(Equal("documentation"))
		})
	})
})

var _ = Describe("Set", func() {
	Describe("ValidateForSubmit", func() {
		It("should reject a set with departments only", func() {
			set := assignment.NewSet()
			set.Departments.Add("financing", "Financing")

			Expect(set.ValidateForSubmit()).To(MatchError(internal.ErrNoDivisionOrOffice))
		})

		It("should accept a division-only set", func() {
			set := assignment.NewSet()
			set.Divisions.Add("documentation", "Documentation")

			Expect(set.ValidateForSubmit()).To(Succeed())
		})

		It("should accept an office-only set", func() {
			set := assignment.NewSet()
			division := "documentation"
			set.Offices.AddWithDivision("doc-registry", "Registry", &division)

			Expect(set.ValidateForSubmit()).To(Succeed())
		})
	})
})
