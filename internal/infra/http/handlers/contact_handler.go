package handlers

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/infra/http/views"
	"github.com/experttechtutors/tutor-leads/internal/infra/metrics"
	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

const (
	FormSuccessMessage = "Thank you! We've received your request and will contact you within 2 hours with suitable tech tutor matches."
	APISuccessMessage  = "Thank you! We've received your request and will contact you within 2 hours."
)

type LeadSubmitter interface {
	Execute(ctx context.Context, raw usecase.RawLead) (*usecase.SubmitLeadOutput, error)
}

type ContactHandler struct {
	Submitter LeadSubmitter
	Logger    *zap.Logger
}

func NewContactHandler(submitter LeadSubmitter, logger *zap.Logger) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{Submitter: submitter, Logger: logger}
}

// ShowContactPage (GET /contact)
func (h *ContactHandler) ShowContactPage(w http.ResponseWriter, r *http.Request) {
	page := views.NewPage(views.PageContact,
		"Contact Us - Expert Tech Tutors Hyderabad",
		"Get in touch with Expert Tech Tutor Hyderabad for personalized technology tutoring",
	)
	page.Success = r.URL.Query().Get("success")
	page.Error = r.URL.Query().Get("error")

	if err := views.Render(w, http.StatusOK, page); err != nil {
		h.Logger.Error("render contact page", zap.Error(err))
		http.Error(w, "Server Error", http.StatusInternalServerError)
	}
}

// ShowSuccessPage (GET /contact/success)
func (h *ContactHandler) ShowSuccessPage(w http.ResponseWriter, r *http.Request) {
	page := views.NewPage(views.PageContactSuccess, "Request Submitted - Expert Tech Tutors Hyderabad", "")
	if err := views.Render(w, http.StatusOK, page); err != nil {
		h.Logger.Error("render contact success page", zap.Error(err))
		http.Error(w, "Server Error", http.StatusInternalServerError)
	}
}

// SubmitForm (POST /contact) answers every outcome with a redirect back to
// the contact page carrying a success or error banner.
func (h *ContactHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var raw usecase.RawLead
	form, err := decodeBody(w, r, &raw)
	if err != nil {
		h.Logger.Warn("unreadable contact form", zap.Error(err))
		redirectContact(w, r, "error", GenericFormError)
		return
	}
	if form != nil {
		raw = rawLeadFromForm(form)
	}

	if _, err := h.Submitter.Execute(r.Context(), raw); err != nil {
		if de, ok := usecase.AsDomainError(err); ok {
			recordViolations(de.Violations)
			h.Logger.Info("contact form rejected", zap.String("reason", de.Message))
			redirectContact(w, r, "error", de.Message)
			return
		}
		h.Logger.Error("contact form submission failed", zap.Error(err))
		redirectContact(w, r, "error", GenericFormError)
		return
	}

	metrics.RecordLeadSubmitted("form")
	redirectContact(w, r, "success", FormSuccessMessage)
}

// SubmitAPI (POST /contact/api)
func (h *ContactHandler) SubmitAPI(w http.ResponseWriter, r *http.Request) {
	var raw usecase.RawLead
	form, err := decodeBody(w, r, &raw)
	if err != nil {
		h.Logger.Warn("malformed contact request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: GenericAPIError})
		return
	}
	if form != nil {
		raw = rawLeadFromForm(form)
	}

	if _, err := h.Submitter.Execute(r.Context(), raw); err != nil {
		if de, ok := usecase.AsDomainError(err); ok {
			recordViolations(de.Violations)
			h.Logger.Info("contact request rejected", zap.String("reason", de.Message))
			writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Errors: de.Violations})
			return
		}
		h.Logger.Error("contact request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: GenericAPIError})
		return
	}

	metrics.RecordLeadSubmitted("api")
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: APISuccessMessage})
}

func rawLeadFromForm(form url.Values) usecase.RawLead {
	return usecase.RawLead{
		StudentName:  form.Get("studentName"),
		ParentName:   form.Get("parentName"),
		Phone:        form.Get("phone"),
		Email:        form.Get("email"),
		Age:          form.Get("age"),
		Subjects:     usecase.StringList(formList(form, "subjects")),
		LearningGoal: form.Get("learningGoal"),
		Area:         form.Get("area"),
		TutorGender:  form.Get("tutorGender"),
		SessionType:  form.Get("sessionType"),
		Budget:       form.Get("budget"),
		Experience:   form.Get("experience"),
		Message:      form.Get("message"),
	}
}

func recordViolations(violations []usecase.ValidationError) {
	for _, v := range violations {
		metrics.RecordValidationFailure(v.Field)
	}
}

func redirectContact(w http.ResponseWriter, r *http.Request, key, message string) {
	q := url.Values{}
	q.Set(key, message)
	http.Redirect(w, r, "/contact?"+q.Encode(), http.StatusSeeOther)
}
