package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/entity"
	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

type LeadManager interface {
	List(ctx context.Context) ([]entity.Lead, error)
	UpdateStatus(ctx context.Context, id string, input usecase.UpdateStatusInput) error
}

type AdminHandler struct {
	Leads  LeadManager
	Logger *zap.Logger
}

func NewAdminHandler(leads LeadManager, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{Leads: leads, Logger: logger}
}

type ContactsResponse struct {
	Success  bool          `json:"success"`
	Contacts []entity.Lead `json:"contacts"`
}

// ListContacts (GET /contact/admin)
func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context())
	if err != nil {
		h.Logger.Error("error fetching contacts", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "Server Error"})
		return
	}
	writeJSON(w, http.StatusOK, ContactsResponse{Success: true, Contacts: leads})
}

// UpdateStatus (PUT /contact/admin/{id}/status)
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.UpdateStatusInput
	form, err := decodeBody(w, r, &input)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: GenericAPIError})
		return
	}
	if form != nil {
		input.Status = form.Get("status")
	}

	if err := h.Leads.UpdateStatus(r.Context(), id, input); err != nil {
		if de, ok := usecase.AsDomainError(err); ok {
			if de.Code == usecase.CodeLeadNotFound {
				writeJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: de.Message})
				return
			}
			writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Errors: de.Violations})
			return
		}
		h.Logger.Error("error updating contact status", zap.String("lead_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: "Server Error"})
		return
	}

	h.Logger.Info("contact status updated", zap.String("lead_id", id), zap.String("status", input.Status))
	writeJSON(w, http.StatusOK, APIResponse{Success: true})
}
