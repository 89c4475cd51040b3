package postgres

import (
	"context"

	"gorm.io/gorm"

	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
)

// GrantRepository writes grant rows and answers access queries for session
// construction. The same table set serves both directions.
type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

func (r *GrantRepository) InsertDepartmentGrants(ctx context.Context, rows []grantDatamodel.DepartmentGrant) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *GrantRepository) InsertDivisionGrants(ctx context.Context, rows []grantDatamodel.DivisionGrant) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *GrantRepository) InsertOfficeGrants(ctx context.Context, rows []grantDatamodel.OfficeGrant) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// AccessibleDepartments lists the department ids the user holds grants for.
func (r *GrantRepository) AccessibleDepartments(ctx context.Context, userID int64) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&grantDatamodel.DepartmentGrant{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("department_id", &ids).Error
	return ids, err
}

func (r *GrantRepository) AccessibleDivisions(ctx context.Context, userID int64) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&grantDatamodel.DivisionGrant{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("division_id", &ids).Error
	return ids, err
}

// OfficeGrantFor returns the user's grant for one office, nil when absent.
func (r *GrantRepository) OfficeGrantFor(ctx context.Context, userID int64, officeID string) (*grantDatamodel.OfficeGrant, error) {
	var row grantDatamodel.OfficeGrant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND office_id = ?", userID, officeID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
