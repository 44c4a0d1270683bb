package services

import (
	"context"
	"errors"
	"testing"

	"grafica/internal/amqp"
	"grafica/internal/core"
)

type fakeOrderRepo struct {
	orders    map[string]core.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]core.Order)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, o core.Order) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	o.ID = "generated-id"
	f.orders[o.ID] = o
	return o.ID, nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context) ([]core.Order, error) {
	out := make([]core.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrder(ctx context.Context, id string) (core.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return core.Order{}, errors.New("not found")
	}
	return o, nil
}

func (f *fakeOrderRepo) UpdateOrder(ctx context.Context, o core.Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(ctx context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

type recordedChange struct {
	source, id, action string
}

type fakePublisher struct {
	changes []recordedChange
	err     error
}

func (f *fakePublisher) PublishRecordChange(ctx context.Context, source, id, action string) error {
	if f.err != nil {
		return f.err
	}
	f.changes = append(f.changes, recordedChange{source, id, action})
	return nil
}

func validOrder() core.Order {
	return core.Order{
		OrderName:    "Cartões de visita",
		CustomerName: "Maria",
		Amount:       core.Money{Cents: 15000},
		ReceivedDate: core.NewDate(2024, 3, 10),
		Status:       core.StatusNotStarted,
	}
}

func TestCreateOrderPublishesChange(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := NewOrderService(repo, pub)

	id, err := svc.CreateOrder(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	if len(pub.changes) != 1 {
		t.Fatalf("published %d changes, want 1", len(pub.changes))
	}
	want := recordedChange{amqp.SourceOrder, id, amqp.ActionCreated}
	if pub.changes[0] != want {
		t.Errorf("change = %+v, want %+v", pub.changes[0], want)
	}
}

func TestCreateOrderRejectsInvalid(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, &fakePublisher{})

	o := validOrder()
	o.Amount.Cents = 0
	if _, err := svc.CreateOrder(context.Background(), o); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatal("invalid order must not be persisted")
	}
}

func TestCreateOrderSurvivesPublishFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewOrderService(repo, pub)

	id, err := svc.CreateOrder(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("CreateOrder should not fail on publish error: %v", err)
	}
	if _, ok := repo.orders[id]; !ok {
		t.Fatal("order must be persisted despite publish failure")
	}
}

func TestCreateOrderWithoutPublisher(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil)

	if _, err := svc.CreateOrder(context.Background(), validOrder()); err != nil {
		t.Fatalf("CreateOrder without publisher: %v", err)
	}
}

func TestDeleteOrderPublishesChange(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := NewOrderService(repo, pub)

	id, err := svc.CreateOrder(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if err := svc.DeleteOrder(context.Background(), id); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	last := pub.changes[len(pub.changes)-1]
	if last.action != amqp.ActionDeleted {
		t.Errorf("last action = %q, want %q", last.action, amqp.ActionDeleted)
	}
}

func TestCreateOrderStorageError(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.createErr = errors.New("disk full")
	pub := &fakePublisher{}
	svc := NewOrderService(repo, pub)

	if _, err := svc.CreateOrder(context.Background(), validOrder()); err == nil {
		t.Fatal("expected storage error")
	}
	if len(pub.changes) != 0 {
		t.Fatal("must not publish when storage failed")
	}
}
