package assignment_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/assignment"
	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
	"github.com/geocasagroup/portal/internal/core/events"
)

// MockGrantRepository implements assignment.RepositoryAPI
type MockGrantRepository struct {
	departments []grantDatamodel.DepartmentGrant
	divisions   []grantDatamodel.DivisionGrant
	offices     []grantDatamodel.OfficeGrant

	failDepartments error
	failDivisions   error
	failOffices     error
}

func (m *MockGrantRepository) InsertDepartmentGrants(_ context.Context, rows []grantDatamodel.DepartmentGrant) error {
	if m.failDepartments != nil {
		return m.failDepartments
	}
	m.departments = append(m.departments, rows...)
	return nil
}

func (m *MockGrantRepository) InsertDivisionGrants(_ context.Context, rows []grantDatamodel.DivisionGrant) error {
	if m.failDivisions != nil {
		return m.failDivisions
	}
	m.divisions = append(m.divisions, rows...)
	return nil
}

func (m *MockGrantRepository) InsertOfficeGrants(_ context.Context, rows []grantDatamodel.OfficeGrant) error {
	if m.failOffices != nil {
		return m.failOffices
	}
	m.offices = append(m.offices, rows...)
	return nil
}

// MockUserResolver implements assignment.UserResolver
type MockUserResolver struct {
	ids     map[string]int64
	failure error
}

func (m *MockUserResolver) ResolveSystemUserID(_ context.Context, email string) (int64, error) {
	if m.failure != nil {
		return 0, m.failure
	}
	id, ok := m.ids[email]
	if !ok {
		return 0, internal.NewNotFoundError("no system user", internal.ErrCodeUserNotFound)
	}
	return id, nil
}

// MockEventBus implements assignment.EventPublisher
type MockEventBus struct {
	published []events.Event
}

func (m *MockEventBus) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Assignment Service", func() {
	var (
		repo     *MockGrantRepository
		resolver *MockUserResolver
		bus      *MockEventBus
		service  *assignment.Service
		ctx      context.Context
	)

	buildSet := func() *assignment.Set {
		set := assignment.NewSet()
		set.Departments.Add("financing", "Financing")
		set.Departments.Add("land-cadastral", "Land and Cadastral")
		set.Divisions.Add("documentation", "Documentation")
		division := "documentation"
		set.Offices.AddWithDivision("doc-registry", "Registry", &division)
		return set
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = &MockGrantRepository{}
		resolver = &MockUserResolver{ids: map[string]int64{"claire@geocasagroup.com": 7}}
		bus = &MockEventBus{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = assignment.NewService(repo, resolver, bus, logger)
	})

	Describe("Submit", func() {
		It("should write one row per entry and report the counts", func() {
			result, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.SystemUserID).To(Equal(int64(7)))
			Expect(result.Departments).To(Equal(2))
			Expect(result.Divisions).To(Equal(1))
			Expect(result.Offices).To(Equal(1))
			Expect(result.FailedSteps).To(BeEmpty())
		})

		It("should carry the primary flags into the rows", func() {
			_, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.departments[0].IsPrimary).To(BeTrue())
			Expect(repo.departments[1].IsPrimary).To(BeFalse())
			Expect(repo.divisions[0].IsPrimary).To(BeTrue())
		})

		It("should stamp the office role template", func() {
			_, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
			Expect(err).NotTo(HaveOccurred())

			row := repo.offices[0]
			Expect(row.Role).To(Equal("Agent foncier"))
			Expect(row.AccessLevel).To(Equal(assignment.AccessLevelEditor))
			Expect(row.CanViewDocuments).To(BeTrue())
			Expect(row.CanCreateDocuments).To(BeTrue())
			Expect(row.CanValidate).To(BeFalse())
			Expect(row.CanAssign).To(BeFalse())
			Expect(row.DivisionID).NotTo(BeNil())
			Expect(*row.DivisionID).To(Equal("documentation"))
		})

		It("should reject a set without divisions or offices", func() {
			set := assignment.NewSet()
			set.Departments.Add("financing", "Financing")

			_, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", set)
			Expect(err).To(MatchError(internal.ErrNoDivisionOrOffice))
			Expect(repo.departments).To(BeEmpty())
		})

		It("should publish the submission event", func() {
			_, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
			Expect(err).NotTo(HaveOccurred())
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventGrantsSubmitted))
		})

		Context("when the system user lookup fails", func() {
			BeforeEach(func() {
				resolver.failure = errors.New("directory down")
			})

			It("should abort before writing anything", func() {
				result, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
				Expect(result).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUserLookupFailed))
				Expect(repo.departments).To(BeEmpty())
				Expect(repo.divisions).To(BeEmpty())
				Expect(repo.offices).To(BeEmpty())
			})
		})

		Context("when one category fails to insert", func() {
			BeforeEach(func() {
				repo.failDivisions = errors.New("constraint violation")
			})

			It("should keep the earlier writes and name the failed step", func() {
				result, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
				Expect(err).To(HaveOccurred())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeGrantInsertFailed))

				Expect(result).NotTo(BeNil())
				Expect(result.FailedSteps).To(ConsistOf(string(assignment.KindDivision)))
				Expect(result.Departments).To(Equal(2))
				Expect(result.Divisions).To(Equal(0))
				Expect(result.Offices).To(Equal(1))
				Expect(repo.departments).To(HaveLen(2))
				Expect(repo.offices).To(HaveLen(1))
			})
		})

		Context("when every category fails", func() {
			BeforeEach(func() {
				repo.failDepartments = errors.New("down")
				repo.failDivisions = errors.New("down")
				repo.failOffices = errors.New("down")
			})

			It("should report all three steps", func() {
				result, err := service.Submit(ctx, "claire@geocasagroup.com", "Agent foncier", buildSet())
				Expect(err).To(HaveOccurred())
				Expect(result.FailedSteps).To(ConsistOf(
					string(assignment.KindDepartment),
					string(assignment.KindDivision),
					string(assignment.KindOffice),
				))
			})
		})
	})
})
