package http

import (
	"log/slog"
	"net/http"

	"grafica/internal/core"
)

type orderDTO struct {
	ID           string `json:"id"`
	OrderName    string `json:"order_name"`
	CustomerName string `json:"customer_name"`
	ServiceID    string `json:"service_id,omitempty"`
	Amount       string `json:"amount"`
	ReceivedDate string `json:"received_date"`
	DeliveryDate string `json:"delivery_date,omitempty"`
	Status       string `json:"status"`
	Paid         bool   `json:"paid"`
}

type orderRequest struct {
	OrderName    string `json:"order_name"`
	CustomerName string `json:"customer_name"`
	ServiceID    string `json:"service_id"`
	Amount       string `json:"amount"`
	ReceivedDate string `json:"received_date"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
	Paid         bool   `json:"paid"`
}

func orderToDTO(o core.Order) orderDTO {
	dto := orderDTO{
		ID:           o.ID,
		OrderName:    o.OrderName,
		CustomerName: o.CustomerName,
		ServiceID:    o.ServiceID,
		Amount:       core.FormatCents(o.Amount.Cents),
		ReceivedDate: o.ReceivedDate.Format("2006-01-02"),
		Status:       o.Status,
		Paid:         o.Paid,
	}
	if !o.DeliveryDate.IsZero() {
		dto.DeliveryDate = o.DeliveryDate.Format("2006-01-02")
	}
	return dto
}

func (req orderRequest) toDomain(id string) (core.Order, error) {
	cents, err := core.ParseAmountToCents(req.Amount)
	if err != nil {
		return core.Order{}, core.ErrInvalidAmount
	}

	received, err := parseDate(req.ReceivedDate)
	if err != nil {
		return core.Order{}, core.ErrInvalidDate
	}
	delivery, err := parseOptionalDate(req.DeliveryDate)
	if err != nil {
		return core.Order{}, core.ErrInvalidDate
	}

	status := sanitizeInput(req.Status)
	if status == "" {
		status = core.StatusNotStarted
	}

	return core.Order{
		ID:           id,
		OrderName:    sanitizeInput(req.OrderName),
		CustomerName: sanitizeInput(req.CustomerName),
		ServiceID:    sanitizeInput(req.ServiceID),
		Amount:       core.Money{Cents: cents},
		ReceivedDate: received,
		DeliveryDate: delivery,
		Status:       status,
		Paid:         req.Paid,
	}, nil
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	items, err := s.orders.ListOrders(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List orders error", "error", err)
		writeStorageError(w, err)
		return
	}

	out := make([]orderDTO, 0, len(items))
	for _, o := range items {
		out = append(out, orderToDTO(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := req.toDomain("")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := o.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.orders.CreateOrder(r.Context(), o)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create order error", "error", err)
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard()
	o.ID = id
	writeJSON(w, http.StatusCreated, orderToDTO(o))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToDTO(o))
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := req.toDomain(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := o.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.orders.UpdateOrder(r.Context(), o); err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, orderToDTO(o))
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.orders.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}
