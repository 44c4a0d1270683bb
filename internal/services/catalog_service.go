package services

import (
	"context"
	"fmt"

	"grafica/internal/core"
)

// CatalogService manages the print-shop service catalog. Catalog rows
// never enter the ledger, so no record change is published.
type CatalogService struct {
	repo ServiceRepository
}

func NewCatalogService(repo ServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateService(ctx context.Context, svc core.Service) (string, error) {
	if err := svc.Validate(); err != nil {
		return "", err
	}

	id, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return "", fmt.Errorf("save service: %w", err)
	}

	return id, nil
}

func (s *CatalogService) ListServices(ctx context.Context, activeOnly bool) ([]core.Service, error) {
	return s.repo.ListServices(ctx, activeOnly)
}

func (s *CatalogService) GetService(ctx context.Context, id string) (core.Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *CatalogService) UpdateService(ctx context.Context, svc core.Service) error {
	if err := svc.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	return nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	return nil
}
