package services

import (
	"context"
	"fmt"
	"log/slog"

	"grafica/internal/amqp"
	"grafica/internal/core"
)

// TransactionService orchestrates manual income and expense entries.
type TransactionService struct {
	repo      TransactionRepository
	publisher Publisher
}

func NewTransactionService(repo TransactionRepository, publisher Publisher) *TransactionService {
	return &TransactionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	id, err := s.repo.CreateTransaction(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	s.publishChange(ctx, id, amqp.ActionCreated)
	return id, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishChange(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *TransactionService) publishChange(ctx context.Context, id, action string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping record change")
		return
	}

	if err := s.publisher.PublishRecordChange(ctx, amqp.SourceTransaction, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			"source", amqp.SourceTransaction, "id", id, "action", action, "error", err)
	}
}
