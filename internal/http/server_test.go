package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"grafica/internal/core"
	"grafica/internal/ledger"
	"grafica/internal/services"
	"grafica/internal/storage"
)

// memRepo is an in-memory stand-in for the SQLite repository.
type memRepo struct {
	nextID   int
	services map[string]core.Service
	orders   map[string]core.Order
	txs      map[string]core.Transaction
}

func newMemRepo() *memRepo {
	return &memRepo{
		services: make(map[string]core.Service),
		orders:   make(map[string]core.Order),
		txs:      make(map[string]core.Transaction),
	}
}

func (m *memRepo) newID() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *memRepo) CreateService(ctx context.Context, s core.Service) (string, error) {
	s.ID = m.newID()
	m.services[s.ID] = s
	return s.ID, nil
}

func (m *memRepo) ListServices(ctx context.Context, activeOnly bool) ([]core.Service, error) {
	out := make([]core.Service, 0, len(m.services))
	for _, s := range m.services {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memRepo) GetService(ctx context.Context, id string) (core.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return core.Service{}, storage.ErrNotFound
	}
	return s, nil
}

func (m *memRepo) UpdateService(ctx context.Context, s core.Service) error {
	if _, ok := m.services[s.ID]; !ok {
		return storage.ErrNotFound
	}
	m.services[s.ID] = s
	return nil
}

func (m *memRepo) DeleteService(ctx context.Context, id string) error {
	if _, ok := m.services[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *memRepo) CreateOrder(ctx context.Context, o core.Order) (string, error) {
	o.ID = m.newID()
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *memRepo) ListOrders(ctx context.Context) ([]core.Order, error) {
	out := make([]core.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memRepo) GetOrder(ctx context.Context, id string) (core.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return core.Order{}, storage.ErrNotFound
	}
	return o, nil
}

func (m *memRepo) UpdateOrder(ctx context.Context, o core.Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return storage.ErrNotFound
	}
	m.orders[o.ID] = o
	return nil
}

func (m *memRepo) DeleteOrder(ctx context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memRepo) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	t.ID = m.newID()
	m.txs[t.ID] = t
	return t.ID, nil
}

func (m *memRepo) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(m.txs))
	for _, t := range m.txs {
		out = append(out, t)
	}
	return out, nil
}

func (m *memRepo) DeleteTransaction(ctx context.Context, id string) error {
	if _, ok := m.txs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.txs, id)
	return nil
}

type memWriter struct {
	docs []ledger.Document
}

func (m *memWriter) WriteReport(ctx context.Context, doc ledger.Document) (string, error) {
	m.docs = append(m.docs, doc)
	return "reports/relatorio-test.txt", nil
}

func newTestServer(t *testing.T, exporter *memWriter) (*Server, *memRepo) {
	t.Helper()
	repo := newMemRepo()

	catalog := services.NewCatalogService(repo)
	orders := services.NewOrderService(repo, nil)
	txs := services.NewTransactionService(repo, nil)
	reports := services.NewReportService(repo)

	var srv *Server
	if exporter != nil {
		srv = NewServer(":0", catalog, orders, txs, reports, exporter, services.SourceCombined)
	} else {
		srv = NewServer(":0", catalog, orders, txs, reports, nil, services.SourceCombined)
	}
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv, repo
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, srv, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d, want 200", path, rec.Code)
		}
	}
}

func TestCreateAndGetOrder(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/orders", orderRequest{
		OrderName:    "Cartões de visita",
		CustomerName: "Maria",
		Amount:       "150,00",
		ReceivedDate: "2024-03-10",
		Status:       core.StatusDelivered,
		Paid:         true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create order: status %d, body %s", rec.Code, rec.Body.String())
	}

	var created orderDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Amount != "150.00" {
		t.Errorf("amount = %q, want 150.00", created.Amount)
	}

	rec = doJSON(t, srv, http.MethodGet, "/orders/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get order: status %d", rec.Code)
	}
}

func TestCreateOrderInvalidAmount(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/orders", orderRequest{
		OrderName:    "Banner",
		CustomerName: "João",
		Amount:       "abc",
		ReceivedDate: "2024-03-10",
		Status:       core.StatusNotStarted,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/orders/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestCreateTransactionInvalidType(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/transactions", transactionRequest{
		Type:        "transfer",
		Amount:      "10.00",
		Description: "Teste",
		Date:        "2024-03-10",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rec.Code)
	}
}

func TestDashboardSummary(t *testing.T) {
	srv, repo := newTestServer(t, nil)

	repo.orders["o1"] = core.Order{
		ID: "o1", OrderName: "Cartões", CustomerName: "Maria",
		Amount:       core.Money{Cents: 15000},
		ReceivedDate: core.NewDate(2024, 3, 10),
		Status:       core.StatusDelivered, Paid: true,
	}
	repo.txs["t1"] = core.Transaction{
		ID: "t1", Type: core.Expense,
		Amount:      core.Money{Cents: 3000},
		Description: "Papel", Date: core.NewDate(2024, 3, 12),
	}

	rec := doJSON(t, srv, http.MethodGet, "/dashboard/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var sum summaryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.TotalIncomeCents != 15000 || sum.TotalExpenseCents != 3000 || sum.NetProfitCents != 12000 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.NetProfit != "R$ 120.00" {
		t.Errorf("net profit = %q, want R$ 120.00", sum.NetProfit)
	}
}

func TestDashboardSummaryUnknownSource(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/dashboard/summary?source=everything", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestDashboardCacheInvalidatedOnWrite(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodGet, "/dashboard/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("initial summary: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/transactions", transactionRequest{
		Type:        "income",
		Amount:      "80.00",
		Description: "Convites avulsos",
		Date:        "2024-05-02",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/dashboard/summary", nil)
	var sum summaryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.TotalIncomeCents != 8000 {
		t.Errorf("total income = %d, want 8000 after cache invalidation", sum.TotalIncomeCents)
	}
}

func TestDashboardReportDocument(t *testing.T) {
	srv, repo := newTestServer(t, nil)

	repo.orders["o1"] = core.Order{
		ID: "o1", OrderName: "Banner", CustomerName: "Ana",
		Amount:       core.Money{Cents: 20000},
		ReceivedDate: core.NewDate(2024, 4, 5),
		Status:       core.StatusInProgress, Paid: false,
	}

	rec := doJSON(t, srv, http.MethodGet, "/dashboard/report", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var doc ledger.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Title != ledger.ReportTitle {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Rows) != 1 || doc.Rows[0].Settled != "Pendente" {
		t.Errorf("rows = %+v", doc.Rows)
	}
}

func TestDashboardExport(t *testing.T) {
	writer := &memWriter{}
	srv, _ := newTestServer(t, writer)

	rec := doJSON(t, srv, http.MethodPost, "/dashboard/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var out exportDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Ref == "" || len(writer.docs) != 1 {
		t.Errorf("ref = %q, written docs = %d", out.Ref, len(writer.docs))
	}
}

func TestDashboardExportNotConfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/dashboard/export", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", rec.Code)
	}
}
