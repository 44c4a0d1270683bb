package http

import (
	"log/slog"
	"net/http"

	"grafica/internal/core"
)

type transactionDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ServiceID   string `json:"service_id,omitempty"`
}

type transactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ServiceID   string `json:"service_id"`
}

func transactionToDTO(t core.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      core.FormatCents(t.Amount.Cents),
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
		ServiceID:   t.ServiceID,
	}
}

func (req transactionRequest) toDomain() (core.Transaction, error) {
	cents, err := core.ParseAmountToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, core.ErrInvalidAmount
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, core.ErrInvalidDate
	}

	return core.Transaction{
		Type:        core.TransactionType(sanitizeInput(req.Type)),
		Amount:      core.Money{Cents: cents},
		Description: sanitizeInput(req.Description),
		Date:        date,
		ServiceID:   sanitizeInput(req.ServiceID),
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := s.txs.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		writeStorageError(w, err)
		return
	}

	out := make([]transactionDTO, 0, len(items))
	for _, t := range items {
		out = append(out, transactionToDTO(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.txs.CreateTransaction(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction error", "error", err)
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard()
	t.ID = id
	writeJSON(w, http.StatusCreated, transactionToDTO(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.txs.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}

	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}
