package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

const (
	ConfirmationSubject = "✅ Request Received - Expert Tech Tutors Hyderabad"
	AdminAlertSubject   = "🚨 New Tech Tutor Request - Expert Tech Tutors Hyderabad"
	QuickCallSubject    = "📞 Quick Call Request - Expert Tech Tutors Hyderabad"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ist = time.FixedZone("IST", 5*60*60+30*60)

type leadView struct {
	Lead               entity.Lead
	Company            entity.Company
	SubjectsText       string
	AgeText            string
	BudgetText         string
	TutorPreference    string
	SubmittedAtText    string
	CallURL            template.URL
	WhatsAppURL        template.URL
	CompanyWhatsAppURL template.URL
}

type quickCallView struct {
	Request         entity.QuickCallRequest
	RequestedAtText string
	CallURL         template.URL
	WhatsAppURL     template.URL
}

// RenderConfirmation builds the email sent to the person who filled in
// the form.
func RenderConfirmation(lead entity.Lead) (Email, error) {
	html, err := render("confirmation.html", newLeadView(lead))
	if err != nil {
		return Email{}, err
	}
	return Email{To: lead.Email, Subject: ConfirmationSubject, HTML: html}, nil
}

// RenderAdminAlert builds the alert for the team. The recipient is left
// empty; the notifier fills it in.
func RenderAdminAlert(lead entity.Lead) (Email, error) {
	html, err := render("admin_alert.html", newLeadView(lead))
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: AdminAlertSubject, HTML: html}, nil
}

func RenderQuickCall(req entity.QuickCallRequest) (Email, error) {
	html, err := render("quick_call.html", quickCallView{
		Request:         req,
		RequestedAtText: formatIST(req.RequestedAt),
		CallURL:         phoneURL(req.Phone),
		WhatsAppURL:     whatsAppURL("91" + req.Phone),
	})
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: QuickCallSubject, HTML: html}, nil
}

func newLeadView(lead entity.Lead) leadView {
	return leadView{
		Lead:               lead,
		Company:            entity.ExpertTechTutors,
		SubjectsText:       strings.Join(lead.Subjects, ", "),
		AgeText:            orText(lead.Age, "Not specified"),
		BudgetText:         orText(lead.Budget, "Not specified"),
		TutorPreference:    orText(lead.TutorGender, "No preference"),
		SubmittedAtText:    formatIST(lead.SubmittedAt),
		CallURL:            phoneURL(lead.Phone),
		WhatsAppURL:        whatsAppURL("91" + lead.Phone),
		CompanyWhatsAppURL: whatsAppURL(entity.ExpertTechTutors.WhatsApp),
	}
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return body.String(), nil
}

// phoneURL and whatsAppURL only receive validated digit strings.
func phoneURL(phone string) template.URL {
	return template.URL("tel:+91" + phone)
}

func whatsAppURL(number string) template.URL {
	return template.URL("https://wa.me/" + number)
}

func formatIST(t time.Time) string {
	return t.In(ist).Format("2/1/2006, 3:04:05 pm")
}

func orText(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
