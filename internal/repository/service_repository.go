package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
)

// ServiceRepository defines catalog persistence operations.
type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Update(ctx context.Context, svc *model.Service) error
	Upsert(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new catalog repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	return r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", svc.ID).
		Select("name", "price", "description", "img", "category").
		Updates(svc).Error
}

// Upsert inserts svc or, when its ID exists, overwrites the editable columns.
func (r *serviceRepository) Upsert(ctx context.Context, svc *model.Service) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "description", "img", "category", "updated_at"}),
	}).Create(svc).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrServiceNotFound
	}
	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	var svc model.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error; err != nil {
		return nil, notFound(err, apperrors.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
