package handlers

import (
	"net/http"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// ReferenceHandler serves the catalogs the contact form is built from.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

type SubjectsResponse struct {
	Success  bool             `json:"success"`
	Subjects []entity.Subject `json:"subjects"`
}

type AreasResponse struct {
	Success bool          `json:"success"`
	Areas   []entity.Area `json:"areas"`
}

// Subjects (GET /contact/subjects)
func (h *ReferenceHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SubjectsResponse{Success: true, Subjects: entity.Subjects()})
}

// Areas (GET /contact/areas)
func (h *ReferenceHandler) Areas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AreasResponse{Success: true, Areas: entity.Areas()})
}
