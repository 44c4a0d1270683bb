package services

import (
	"context"
	"errors"
	"testing"

	"grafica/internal/amqp"
	"grafica/internal/core"
)

type fakeTransactionRepo struct {
	txs map[string]core.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txs: make(map[string]core.Transaction)}
}

func (f *fakeTransactionRepo) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	t.ID = "generated-id"
	f.txs[t.ID] = t
	return t.ID, nil
}

func (f *fakeTransactionRepo) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(f.txs))
	for _, t := range f.txs {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTransactionRepo) DeleteTransaction(ctx context.Context, id string) error {
	delete(f.txs, id)
	return nil
}

func validTransaction() core.Transaction {
	return core.Transaction{
		Type:        core.Expense,
		Amount:      core.Money{Cents: 3000},
		Description: "Papel fotográfico",
		Date:        core.NewDate(2024, 3, 12),
	}
}

func TestCreateTransactionPublishesChange(t *testing.T) {
	repo := newFakeTransactionRepo()
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub)

	id, err := svc.CreateTransaction(context.Background(), validTransaction())
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	want := recordedChange{amqp.SourceTransaction, id, amqp.ActionCreated}
	if len(pub.changes) != 1 || pub.changes[0] != want {
		t.Fatalf("changes = %+v, want single %+v", pub.changes, want)
	}
}

func TestCreateTransactionRejectsInvalidType(t *testing.T) {
	repo := newFakeTransactionRepo()
	svc := NewTransactionService(repo, &fakePublisher{})

	tx := validTransaction()
	tx.Type = "transfer"
	if _, err := svc.CreateTransaction(context.Background(), tx); !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if len(repo.txs) != 0 {
		t.Fatal("invalid transaction must not be persisted")
	}
}

func TestDeleteTransactionPublishesChange(t *testing.T) {
	repo := newFakeTransactionRepo()
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub)

	id, err := svc.CreateTransaction(context.Background(), validTransaction())
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if err := svc.DeleteTransaction(context.Background(), id); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	last := pub.changes[len(pub.changes)-1]
	if last.action != amqp.ActionDeleted {
		t.Errorf("last action = %q, want %q", last.action, amqp.ActionDeleted)
	}
}
