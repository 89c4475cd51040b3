package document_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/internal"
	documentDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/document"
	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
	"github.com/geocasagroup/portal/internal/document"
)

func TestDocumentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Document Service Suite")
}

// MockDocumentRepository implements document.RepositoryAPI
type MockDocumentRepository struct {
	documents map[int64]*documentDatamodel.Document
	nextID    int64
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{documents: make(map[int64]*documentDatamodel.Document)}
}

func (m *MockDocumentRepository) Create(_ context.Context, d *documentDatamodel.Document) error {
	m.nextID++
	d.ID = m.nextID
	clone := *d
	m.documents[d.ID] = &clone
	return nil
}

func (m *MockDocumentRepository) GetByID(_ context.Context, id int64) (*documentDatamodel.Document, error) {
	d, ok := m.documents[id]
	if !ok {
		return nil, nil
	}
	clone := *d
	return &clone, nil
}

func (m *MockDocumentRepository) ListByOffice(_ context.Context, officeID string) ([]documentDatamodel.Document, error) {
	var out []documentDatamodel.Document
	for _, d := range m.documents {
		if d.OfficeID == officeID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *MockDocumentRepository) Update(_ context.Context, d *documentDatamodel.Document) error {
	clone := *d
	m.documents[d.ID] = &clone
	return nil
}

// MockGrantReader implements document.GrantReader
type MockGrantReader struct {
	grants map[string]*grantDatamodel.OfficeGrant
}

func NewMockGrantReader() *MockGrantReader {
	return &MockGrantReader{grants: make(map[string]*grantDatamodel.OfficeGrant)}
}

func (m *MockGrantReader) grant(userID int64, officeID string, g *grantDatamodel.OfficeGrant) {
	m.grants[fmt.Sprintf("%d/%s", userID, officeID)] = g
}

func (m *MockGrantReader) OfficeGrantFor(_ context.Context, userID int64, officeID string) (*grantDatamodel.OfficeGrant, error) {
	return m.grants[fmt.Sprintf("%d/%s", userID, officeID)], nil
}

var _ = Describe("Document Service", func() {
	var (
		repo    *MockDocumentRepository
		grants  *MockGrantReader
		service *document.Service
		ctx     context.Context
	)

	staff := document.Actor{ID: 7}
	admin := document.Actor{ID: 1, IsAdmin: true}

	// the role template stamped by personnel registration
	editorGrant := &grantDatamodel.OfficeGrant{
		UserID:             7,
		OfficeID:           "doc-registry",
		Role:               "Agent foncier",
		AccessLevel:        "Editor",
		CanViewDocuments:   true,
		CanCreateDocuments: true,
	}

	createDTO := &document.CreateDocumentDTO{
		Title:     "Titre foncier 1043",
		Reference: "TF-1043",
		OfficeID:  "doc-registry",
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockDocumentRepository()
		grants = NewMockGrantReader()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = document.NewService(repo, grants, logger)
	})

	Describe("Create", func() {
		It("should allow a holder of the registration grant", func() {
			grants.grant(7, "doc-registry", editorGrant)

			doc, err := service.Create(ctx, staff, createDTO)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Status).To(Equal(document.StatusOpen))
			Expect(doc.CreatedBy).To(Equal(int64(7)))
		})

		It("should deny an actor without any grant", func() {
			_, err := service.Create(ctx, staff, createDTO)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCapabilityDenied))
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("should reject unknown offices", func() {
			_, err := service.Create(ctx, admin, &document.CreateDocumentDTO{
				Title: "x", Reference: "y", OfficeID: "nonexistent",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListByOffice", func() {
		It("should require the view capability", func() {
			grants.grant(7, "doc-registry", &grantDatamodel.OfficeGrant{
				UserID: 7, OfficeID: "doc-registry", CanViewDocuments: false,
			})

			_, err := service.ListByOffice(ctx, staff, "doc-registry")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCapabilityDenied))
		})

		It("should list only the office's documents", func() {
			grants.grant(7, "doc-registry", editorGrant)
			_, err := service.Create(ctx, staff, createDTO)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, admin, &document.CreateDocumentDTO{
				Title: "Plan", Reference: "PL-1", OfficeID: "hr-payroll",
			})
			Expect(err).NotTo(HaveOccurred())

			docs, err := service.ListByOffice(ctx, staff, "doc-registry")
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].Reference).To(Equal("TF-1043"))
		})
	})

	Describe("Validate", func() {
		var documentID int64

		BeforeEach(func() {
			grants.grant(7, "doc-registry", editorGrant)
			doc, err := service.Create(ctx, staff, createDTO)
			Expect(err).NotTo(HaveOccurred())
			documentID = doc.ID
		})

		It("should be withheld from the registration grant", func() {
			_, err := service.Validate(ctx, staff, documentID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCapabilityDenied))
		})

		It("should let an admin validate", func() {
			doc, err := service.Validate(ctx, admin, documentID)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Status).To(Equal(document.StatusValidated))
			Expect(doc.ValidatedBy).NotTo(BeNil())
			Expect(*doc.ValidatedBy).To(Equal(int64(1)))
			Expect(doc.ValidatedAt).NotTo(BeNil())
		})

		It("should reject a second validation", func() {
			_, err := service.Validate(ctx, admin, documentID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Validate(ctx, admin, documentID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("should report unknown documents", func() {
			_, err := service.Validate(ctx, admin, 999)
			Expect(err).To(MatchError(internal.ErrDocumentNotFound))
		})
	})

	Describe("Assign", func() {
		var documentID int64

		BeforeEach(func() {
			grants.grant(7, "doc-registry", editorGrant)
			doc, err := service.Create(ctx, staff, createDTO)
			Expect(err).NotTo(HaveOccurred())
			documentID = doc.ID
		})

		It("should be withheld from the registration grant", func() {
			_, err := service.Assign(ctx, staff, documentID, 8)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCapabilityDenied))
		})

		It("should move the document to assigned", func() {
			doc, err := service.Assign(ctx, admin, documentID, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Status).To(Equal(document.StatusAssigned))
			Expect(*doc.AssignedTo).To(Equal(int64(8)))
		})

		It("should not reassign a validated document", func() {
			_, err := service.Validate(ctx, admin, documentID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(ctx, admin, documentID, 8)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})

	Describe("GetByID", func() {
		It("should let a grant holder read within their office", func() {
			grants.grant(7, "doc-registry", editorGrant)
			created, err := service.Create(ctx, staff, createDTO)
			Expect(err).NotTo(HaveOccurred())

			doc, err := service.GetByID(ctx, staff, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Title).To(Equal("Titre foncier 1043"))
		})
	})
})
