package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	personnelDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/personnel"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *personnelDatamodel.Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*personnelDatamodel.Personnel, error) {
	var row personnelDatamodel.Personnel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*personnelDatamodel.Personnel, error) {
	var row personnelDatamodel.Personnel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) List(ctx context.Context) ([]personnelDatamodel.Personnel, error) {
	var rows []personnelDatamodel.Personnel
	err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) SetSystemUserID(ctx context.Context, id, systemUserID int64) error {
	return r.db.WithContext(ctx).
		Model(&personnelDatamodel.Personnel{}).
		Where("id = ?", id).
		Update("system_user_id", systemUserID).Error
}
