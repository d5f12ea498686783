package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tailorshop/internal/cache"
	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
	"tailorshop/internal/repository"
	"tailorshop/internal/storage"
)

const (
	catalogCacheKey = "services:all"
	catalogCacheTTL = 5 * time.Minute
)

// ServiceInput is the editable part of a catalog entry.
type ServiceInput struct {
	Name     string
	Price    string
	Desc     string
	Img      string
	Category string
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(in.Price) == "" {
		return apperrors.NewValidationError("price", "price is required")
	}
	return nil
}

// CatalogService manages the public services list.
type CatalogService interface {
	List(ctx context.Context) ([]model.Service, error)
	Create(ctx context.Context, in ServiceInput) (*model.Service, error)
	Update(ctx context.Context, id string, in ServiceInput) (*model.Service, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	// Invalidate drops the cached list after writes made outside this service.
	Invalidate(ctx context.Context)
}

type catalogService struct {
	repo  repository.ServiceRepository
	cache *cache.Client
	disk  storage.Disk
	now   func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ServiceRepository, cache *cache.Client, disk storage.Disk) CatalogService {
	return &catalogService{repo: repo, cache: cache, disk: disk, now: time.Now}
}

// List returns the catalog, served from cache when possible.
func (s *catalogService) List(ctx context.Context) ([]model.Service, error) {
	var cached []model.Service
	if s.cache.GetJSON(ctx, catalogCacheKey, &cached) {
		return cached, nil
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, catalogCacheKey, services, catalogCacheTTL)
	return services, nil
}

func (s *catalogService) Invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, catalogCacheKey)
}

func (s *catalogService) Create(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc := &model.Service{
		Name:     strings.TrimSpace(in.Name),
		Price:    strings.TrimSpace(in.Price),
		Desc:     in.Desc,
		Img:      in.Img,
		Category: in.Category,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	s.Invalidate(ctx)
	return svc, nil
}

func (s *catalogService) Update(ctx context.Context, id string, in ServiceInput) (*model.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Name = strings.TrimSpace(in.Name)
	svc.Price = strings.TrimSpace(in.Price)
	svc.Desc = in.Desc
	svc.Img = in.Img
	svc.Category = in.Category
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	s.Invalidate(ctx)
	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// UploadImage stores a catalog photo under services/ and returns its URL.
func (s *catalogService) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := storage.ObjectKey("services", s.now().Unix(), filename)
	if err := s.disk.Put(ctx, key, r, contentType); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return s.disk.URL(key), nil
}
