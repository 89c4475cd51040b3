package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	documentDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/document"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *documentDatamodel.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*documentDatamodel.Document, error) {
	var row documentDatamodel.Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListByOffice(ctx context.Context, officeID string) ([]documentDatamodel.Document, error) {
	var rows []documentDatamodel.Document
	err := r.db.WithContext(ctx).
		Where("office_id = ?", officeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Update(ctx context.Context, d *documentDatamodel.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}
