package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

//go:embed templates/layout.html templates/pages/*.html
var files embed.FS

const (
	PageHome           = "home"
	PageAbout          = "about"
	PageServices       = "services"
	PageCourses        = "courses"
	PageBlog           = "blog"
	PageContact        = "contact"
	PageContactSuccess = "contact_success"
	PageNotFound       = "not_found"
)

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		PageHome, PageAbout, PageServices, PageCourses, PageBlog,
		PageContact, PageContactSuccess, PageNotFound,
	} {
		pages[name] = template.Must(template.ParseFS(files,
			"templates/layout.html",
			"templates/pages/"+name+".html",
		))
	}
}

type NavItem struct {
	Name string
	URL  string
	Page string
}

var navigation = []NavItem{
	{Name: "Home", URL: "/", Page: PageHome},
	{Name: "About", URL: "/about", Page: PageAbout},
	{Name: "Services", URL: "/services", Page: PageServices},
	{Name: "Courses", URL: "/courses", Page: PageCourses},
	{Name: "Blog", URL: "/blog", Page: PageBlog},
	{Name: "Contact", URL: "/contact", Page: PageContact},
}

// FormOptions are the select lists of the contact form.
type FormOptions struct {
	AgeGroups     []string
	LearningGoals []string
	TutorGenders  []string
	SessionTypes  []string
	BudgetRanges  []string
	Experiences   []string
}

type Page struct {
	Title       string
	Description string
	Page        string

	// Contact page banners, taken from the query string.
	Success string
	Error   string

	Company     entity.Company
	Navigation  []NavItem
	Subjects    []entity.Subject
	Areas       []entity.Area
	Form        FormOptions
	CallURL     template.URL
	WhatsAppURL template.URL
	Year        int
}

// NewPage fills in the data every page shares.
func NewPage(name, title, description string) Page {
	c := entity.ExpertTechTutors
	return Page{
		Title:       title,
		Description: description,
		Page:        name,
		Company:     c,
		Navigation:  navigation,
		Subjects:    entity.Subjects(),
		Areas:       entity.Areas(),
		Form: FormOptions{
			AgeGroups:     entity.AgeGroups,
			LearningGoals: entity.LearningGoals,
			TutorGenders:  entity.TutorGenders,
			SessionTypes:  entity.SessionTypes,
			BudgetRanges:  entity.BudgetRanges,
			Experiences:   entity.Experiences,
		},
		CallURL:     template.URL("tel:" + strings.ReplaceAll(c.Phone, " ", "")),
		WhatsAppURL: template.URL("https://wa.me/" + c.WhatsApp),
		Year:        time.Now().Year(),
	}
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response.
func Render(w http.ResponseWriter, status int, page Page) error {
	tmpl, ok := pages[page.Page]
	if !ok {
		return fmt.Errorf("views: unknown page %q", page.Page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("views: render %s: %w", page.Page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
