package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/infra/http/views"
)

type PageHandler struct {
	Logger *zap.Logger
}

func NewPageHandler(logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{Logger: logger}
}

// Static returns a handler that renders one of the informational pages.
func (h *PageHandler) Static(name, title, description string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, views.NewPage(name, title, description))
	}
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, views.NewPage(views.PageNotFound, "Page Not Found - Expert Tech Tutor Hyderabad", ""))
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page views.Page) {
	if err := views.Render(w, status, page); err != nil {
		h.Logger.Error("render page", zap.String("page", page.Page), zap.Error(err))
		http.Error(w, "Server Error", http.StatusInternalServerError)
	}
}
