package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
)

func TestGrantRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Grant Repository Suite")
}

// sqlite-compatible mirrors of the grant tables; the postgres datamodels carry
// now() column defaults sqlite cannot migrate.

type testDepartmentGrant struct {
	ID           int64  `gorm:"primaryKey"`
	UserID       int64  `gorm:"column:user_id"`
	DepartmentID string `gorm:"column:department_id"`
	Name         string `gorm:"column:name"`
	IsPrimary    bool   `gorm:"column:is_primary"`
	CreatedAt    time.Time
}

func (testDepartmentGrant) TableName() string { return "department_grants" }

type testDivisionGrant struct {
	ID         int64  `gorm:"primaryKey"`
	UserID     int64  `gorm:"column:user_id"`
	DivisionID string `gorm:"column:division_id"`
	Name       string `gorm:"column:name"`
	IsPrimary  bool   `gorm:"column:is_primary"`
	CreatedAt  time.Time
}

func (testDivisionGrant) TableName() string { return "division_grants" }

type testOfficeGrant struct {
	ID                 int64   `gorm:"primaryKey"`
	UserID             int64   `gorm:"column:user_id"`
	OfficeID           string  `gorm:"column:office_id"`
	DivisionID         *string `gorm:"column:division_id"`
	Name               string  `gorm:"column:name"`
	IsPrimary          bool    `gorm:"column:is_primary"`
	Role               string  `gorm:"column:role"`
	AccessLevel        string  `gorm:"column:access_level"`
	CanViewDocuments   bool    `gorm:"column:can_view_documents"`
	CanCreateDocuments bool    `gorm:"column:can_create_documents"`
	CanValidate        bool    `gorm:"column:can_validate"`
	CanAssign          bool    `gorm:"column:can_assign"`
	CreatedAt          time.Time
}

func (testOfficeGrant) TableName() string { return "office_grants" }

var _ = Describe("Grant Repository", func() {
	var (
		db   *gorm.DB
		repo *GrantRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&testDepartmentGrant{}, &testDivisionGrant{}, &testOfficeGrant{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewGrantRepository(db)
		ctx = context.Background()
	})

	Describe("InsertDepartmentGrants", func() {
		It("should persist the rows", func() {
			err := repo.InsertDepartmentGrants(ctx, []grantDatamodel.DepartmentGrant{
				{UserID: 7, DepartmentID: "land-cadastral", Name: "Land and Cadastral", IsPrimary: true},
				{UserID: 7, DepartmentID: "financing", Name: "Financing"},
			})
			Expect(err).NotTo(HaveOccurred())

			var count int64
			Expect(db.Model(&testDepartmentGrant{}).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("should be a no-op for an empty slice", func() {
			Expect(repo.InsertDepartmentGrants(ctx, nil)).To(Succeed())
		})
	})

	Describe("AccessibleDepartments", func() {
		It("should list only the user's department ids in insertion order", func() {
			err := repo.InsertDepartmentGrants(ctx, []grantDatamodel.DepartmentGrant{
				{UserID: 7, DepartmentID: "land-cadastral", Name: "Land and Cadastral"},
				{UserID: 7, DepartmentID: "financing", Name: "Financing"},
				{UserID: 8, DepartmentID: "sales", Name: "Sales"},
			})
			Expect(err).NotTo(HaveOccurred())

			ids, err := repo.AccessibleDepartments(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"land-cadastral", "financing"}))
		})

		It("should return an empty list for a user without grants", func() {
			ids, err := repo.AccessibleDepartments(ctx, 99)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})
	})

	Describe("AccessibleDivisions", func() {
		It("should list only the user's division ids", func() {
			err := repo.InsertDivisionGrants(ctx, []grantDatamodel.DivisionGrant{
				{UserID: 7, DivisionID: "documentation", Name: "Documentation", IsPrimary: true},
				{UserID: 8, DivisionID: "it-systems", Name: "IT Systems"},
			})
			Expect(err).NotTo(HaveOccurred())

			ids, err := repo.AccessibleDivisions(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"documentation"}))
		})
	})

	Describe("OfficeGrantFor", func() {
		It("should return the stored grant with its capability flags", func() {
			division := "documentation"
			err := repo.InsertOfficeGrants(ctx, []grantDatamodel.OfficeGrant{{
				UserID:             7,
				OfficeID:           "doc-registry",
				DivisionID:         &division,
				Name:               "Registry",
				IsPrimary:          true,
				Role:               "Agent foncier",
				AccessLevel:        "Editor",
				CanViewDocuments:   true,
				CanCreateDocuments: true,
			}})
			Expect(err).NotTo(HaveOccurred())

			grant, err := repo.OfficeGrantFor(ctx, 7, "doc-registry")
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).NotTo(BeNil())
			Expect(grant.Role).To(Equal("Agent foncier"))
			Expect(grant.CanViewDocuments).To(BeTrue())
			Expect(grant.CanValidate).To(BeFalse())
		})

		It("should return nil without error when no grant exists", func() {
			grant, err := repo.OfficeGrantFor(ctx, 7, "doc-registry")
			Expect(err).NotTo(HaveOccurred())
			Expect(grant).To(BeNil())
		})
	})
})
