package session_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/catalog"
	"github.com/geocasagroup/portal/internal/session"
	"github.com/geocasagroup/portal/internal/session/memory"
)

func TestSessionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Service Suite")
}

// MockVerifier implements session.CredentialVerifier
type MockVerifier struct {
	principals map[string]*session.Principal
	passwords  map[string]string
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		principals: make(map[string]*session.Principal),
		passwords:  make(map[string]string),
	}
}

func (m *MockVerifier) AddUser(email, password string, p *session.Principal) {
	m.principals[email] = p
	m.passwords[email] = password
}

func (m *MockVerifier) Verify(_ context.Context, email, password string) (*session.Principal, error) {
	p, ok := m.principals[email]
	if !ok || m.passwords[email] != password {
		return nil, internal.ErrInvalidCredentials
	}
	return p, nil
}

// MockAccessReader implements session.AccessReader
type MockAccessReader struct {
	departments map[int64][]string
	divisions   map[int64][]string
	failError   error
}

func NewMockAccessReader() *MockAccessReader {
	return &MockAccessReader{
		departments: make(map[int64][]string),
		divisions:   make(map[int64][]string),
	}
}

func (m *MockAccessReader) AccessibleDepartments(_ context.Context, userID int64) ([]string, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.departments[userID], nil
}

func (m *MockAccessReader) AccessibleDivisions(_ context.Context, userID int64) ([]string, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.divisions[userID], nil
}

var _ = Describe("Session Service", func() {
	var (
		store    *memory.Store
		verifier *MockVerifier
		access   *MockAccessReader
		service  *session.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.NewStore(time.Hour)
		verifier = NewMockVerifier()
		access = NewMockAccessReader()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = session.NewService(store, verifier, access, logger)

		verifier.AddUser("admin@geocasagroup.com", "secret", &session.Principal{
			ID: 1, Name: "Administrateur", Email: "admin@geocasagroup.com", IsAdmin: true,
		})
		verifier.AddUser("claire@geocasagroup.com", "secret", &session.Principal{
			ID: 2, Name: "Claire Dupont", Email: "claire@geocasagroup.com",
		})
	})

	Describe("Login", func() {
		Context("with the admin account", func() {
			It("should receive the full reference catalog", func() {
				identity, err := service.Login(ctx, "admin@geocasagroup.com", "secret")
				Expect(err).NotTo(HaveOccurred())
				Expect(identity.Departments).To(HaveLen(len(catalog.Departments())))
				Expect(identity.Divisions).To(HaveLen(len(catalog.Divisions())))
			})

			It("should start with no selection", func() {
				identity, err := service.Login(ctx, "admin@geocasagroup.com", "secret")
				Expect(err).NotTo(HaveOccurred())
				Expect(identity.CurrentDepartment).To(BeNil())
				Expect(identity.CurrentDivision).To(BeNil())
				Expect(identity.CurrentOffice).To(BeNil())
			})
		})

		Context("with granted catalog subsets", func() {
			BeforeEach(func() {
				access.departments[2] = []string{"financing", catalog.LandCadastralDepartmentID}
				access.divisions[2] = []string{"documentation"}
			})

			It("should restrict the catalog to granted units", func() {
				identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
				Expect(err).NotTo(HaveOccurred())
				Expect(identity.Departments).To(HaveLen(2))
				Expect(identity.Divisions).To(HaveLen(1))
				Expect(identity.Divisions[0].ID).To(Equal("documentation"))
			})

			It("should preserve catalog order regardless of grant order", func() {
				identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
				Expect(err).NotTo(HaveOccurred())
				// land-cadastral precedes financing in the reference catalog
				Expect(identity.Departments[0].ID).To(Equal(catalog.LandCadastralDepartmentID))
				Expect(identity.Departments[1].ID).To(Equal("financing"))
			})
		})

		Context("when the backend reports no grants at all", func() {
			It("should fall back to the full catalog", func() {
				identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
				Expect(err).NotTo(HaveOccurred())
				Expect(identity.Departments).To(HaveLen(len(catalog.Departments())))
				Expect(identity.Divisions).To(HaveLen(len(catalog.Divisions())))
			})
		})

		Context("with wrong credentials", func() {
			It("should return the credentials error", func() {
				_, err := service.Login(ctx, "claire@geocasagroup.com", "wrong")
				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			})

			It("should not disturb an existing persisted session", func() {
				identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
				Expect(err).NotTo(HaveOccurred())

				_, err = service.Login(ctx, "claire@geocasagroup.com", "wrong")
				Expect(err).To(HaveOccurred())

				restored, err := service.CheckAuthState(ctx, identity.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(restored.Email).To(Equal("claire@geocasagroup.com"))
			})
		})

		Context("when the access reader fails", func() {
			BeforeEach(func() {
				access.failError = errors.New("backend down")
			})

			It("should surface a backend error", func() {
				_, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeBackend))
			})
		})
	})

	Describe("CheckAuthState", func() {
		It("should restore the persisted session", func() {
			identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			restored, err := service.CheckAuthState(ctx, identity.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.Name).To(Equal("Claire Dupont"))
		})

		It("should report session-not-found when nothing is persisted", func() {
			_, err := service.CheckAuthState(ctx, "999")
			Expect(err).To(MatchError(internal.ErrSessionNotFound))
		})
	})

	Describe("Logout", func() {
		It("should clear the persisted session", func() {
			identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Logout(ctx, identity.ID)).To(Succeed())

			_, err = service.CheckAuthState(ctx, identity.ID)
			Expect(err).To(MatchError(internal.ErrSessionNotFound))
		})

		It("should be idempotent", func() {
			identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Logout(ctx, identity.ID)).To(Succeed())
			Expect(service.Logout(ctx, identity.ID)).To(Succeed())
		})
	})

	Describe("selection cascade", func() {
		var userID string

		BeforeEach(func() {
			identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
			Expect(err).NotTo(HaveOccurred())
			userID = identity.ID
		})

		It("should clear division and office when a department is selected", func() {
			_, err := service.SelectDivision(ctx, userID, "human-resources")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.SelectOffice(ctx, userID, "hr-payroll")
			Expect(err).NotTo(HaveOccurred())

			identity, err := service.SelectDepartment(ctx, userID, "financing")
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.CurrentDepartment.ID).To(Equal("financing"))
			Expect(identity.CurrentDivision).To(BeNil())
			Expect(identity.CurrentOffice).To(BeNil())
		})

		It("should clear only the office when a division is selected", func() {
			_, err := service.SelectDepartment(ctx, userID, "financing")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.SelectOffice(ctx, userID, "hr-payroll")
			Expect(err).NotTo(HaveOccurred())

			identity, err := service.SelectDivision(ctx, userID, "human-resources")
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.CurrentDepartment.ID).To(Equal("financing"))
			Expect(identity.CurrentDivision.ID).To(Equal("human-resources"))
			Expect(identity.CurrentOffice).To(BeNil())
		})

		It("should reject unknown catalog ids", func() {
			_, err := service.SelectDepartment(ctx, userID, "nonexistent")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDepartmentNotFound))
		})

		It("should persist the selection across a reload", func() {
			_, err := service.SelectDepartment(ctx, userID, "financing")
			Expect(err).NotTo(HaveOccurred())

			restored, err := service.CheckAuthState(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.CurrentDepartment.ID).To(Equal("financing"))
		})
	})

	Describe("ResetSelection", func() {
		It("should clear the selection but keep the identity and catalog", func() {
			identity, err := service.Login(ctx, "claire@geocasagroup.com", "secret")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.SelectDepartment(ctx, identity.ID, "financing")
			Expect(err).NotTo(HaveOccurred())

			reset, err := service.ResetSelection(ctx, identity.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reset.CurrentDepartment).To(BeNil())
			Expect(reset.Email).To(Equal("claire@geocasagroup.com"))
			Expect(reset.Departments).NotTo(BeEmpty())
		})
	})
})
