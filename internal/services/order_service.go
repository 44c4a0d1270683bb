package services

import (
	"context"
	"fmt"
	"log/slog"

	"grafica/internal/amqp"
	"grafica/internal/core"
)

// OrderService orchestrates order operations across SQLite and AMQP.
type OrderService struct {
	repo      OrderRepository
	publisher Publisher
}

func NewOrderService(repo OrderRepository, publisher Publisher) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateOrder validates and saves an order, then publishes a record
// change so the report export can refresh.
func (s *OrderService) CreateOrder(ctx context.Context, o core.Order) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}

	id, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		return "", fmt.Errorf("save order: %w", err)
	}

	s.publishChange(ctx, amqp.SourceOrder, id, amqp.ActionCreated)
	return id, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]core.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (core.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) UpdateOrder(ctx context.Context, o core.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	s.publishChange(ctx, amqp.SourceOrder, o.ID, amqp.ActionUpdated)
	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.publishChange(ctx, amqp.SourceOrder, id, amqp.ActionDeleted)
	return nil
}

// publishChange is best effort. The record is already persisted; a
// missing broker only delays the next export.
func (s *OrderService) publishChange(ctx context.Context, source, id, action string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping record change")
		return
	}

	if err := s.publisher.PublishRecordChange(ctx, source, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			"source", source, "id", id, "action", action, "error", err)
	}
}
