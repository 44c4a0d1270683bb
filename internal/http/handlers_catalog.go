package http

import (
	"log/slog"
	"net/http"

	"grafica/internal/core"
)

type serviceDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Active      bool   `json:"active"`
}

type serviceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Active      *bool  `json:"active"`
}

func serviceToDTO(s core.Service) serviceDTO {
	return serviceDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       core.FormatCents(s.Price.Cents),
		Active:      s.Active,
	}
}

func (req serviceRequest) toDomain(id string) (core.Service, error) {
	cents, err := core.ParseAmountToCents(req.Price)
	if err != nil {
		return core.Service{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return core.Service{
		ID:          id,
		Name:        sanitizeInput(req.Name),
		Description: sanitizeInput(req.Description),
		Price:       core.Money{Cents: cents},
		Active:      active,
	}, nil
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	items, err := s.catalog.ListServices(r.Context(), activeOnly)
	if err != nil {
		slog.ErrorContext(r.Context(), "List services error", "error", err)
		writeStorageError(w, err)
		return
	}

	out := make([]serviceDTO, 0, len(items))
	for _, svc := range items {
		out = append(out, serviceToDTO(svc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	svc, err := req.toDomain("")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid price: "+req.Price)
		return
	}
	if err := svc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.catalog.CreateService(r.Context(), svc)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create service error", "error", err)
		writeStorageError(w, err)
		return
	}

	svc.ID = id
	writeJSON(w, http.StatusCreated, serviceToDTO(svc))
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	svc, err := s.catalog.GetService(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceToDTO(svc))
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	svc, err := req.toDomain(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid price: "+req.Price)
		return
	}
	if err := svc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.catalog.UpdateService(r.Context(), svc); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceToDTO(svc))
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteService(r.Context(), r.PathValue("id")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
