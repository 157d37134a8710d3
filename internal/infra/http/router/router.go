package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/infra/http/handlers"
	"github.com/experttechtutors/tutor-leads/internal/infra/http/middleware"
	"github.com/experttechtutors/tutor-leads/internal/infra/http/views"
	"github.com/experttechtutors/tutor-leads/internal/infra/ratelimit"
)

type Options struct {
	Contact   *handlers.ContactHandler
	QuickCall *handlers.QuickCallHandler
	Reference *handlers.ReferenceHandler
	Admin     *handlers.AdminHandler
	Pages     *handlers.PageHandler
	Health    *handlers.HealthHandler

	// Limiter guards every submission endpoint with one shared budget.
	Limiter *ratelimit.Limiter
	Logger  *zap.Logger

	// TrustProxy makes the client address come from X-Forwarded-For /
	// X-Real-IP, which the rate limiter keys on.
	TrustProxy     bool
	AllowedOrigins []string
}

func New(o Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if o.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(o.Logger))
	r.Use(middleware.Recoverer(o.Logger))
	r.Use(middleware.Metrics)

	origins := o.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	}))

	formLimit := o.Limiter.Middleware(ratelimit.ClientIP, nil)
	jsonLimit := o.Limiter.Middleware(ratelimit.ClientIP, limitedJSON)

	r.Get("/", o.Pages.Static(views.PageHome,
		"Expert Tech Tutor Hyderabad - Professional CS & Programming Tutoring",
		"Learn Web Development, AI, Python, Data Science from industry experts in Hyderabad"))
	r.Get("/about", o.Pages.Static(views.PageAbout,
		"About Us - Expert Tech Tutor Hyderabad",
		"Meet our team of experienced technology tutors and instructors"))
	r.Get("/services", o.Pages.Static(views.PageServices,
		"Tech Tutoring Services - Web Development, AI, Python | Expert Tech Tutor Hyderabad",
		"Comprehensive tutoring services for Web Development, App Development, AI, Python, Data Science and Software Engineering"))
	r.Get("/courses", o.Pages.Static(views.PageCourses,
		"Technology Courses - Expert Tech Tutor Hyderabad",
		"Browse our comprehensive technology courses and learning programs"))
	r.Get("/blog", o.Pages.Static(views.PageBlog,
		"Tech Blog - Expert Tech Tutor Hyderabad",
		"Read latest articles on web development, programming, and technology trends"))

	r.Route("/contact", func(r chi.Router) {
		r.Get("/", o.Contact.ShowContactPage)
		r.With(formLimit).Post("/", o.Contact.SubmitForm)
		r.With(jsonLimit).Post("/api", o.Contact.SubmitAPI)
		r.With(jsonLimit).Post("/quick-call", o.QuickCall.Handle)
		r.Get("/success", o.Contact.ShowSuccessPage)
		r.Get("/subjects", o.Reference.Subjects)
		r.Get("/areas", o.Reference.Areas)
		r.Get("/admin", o.Admin.ListContacts)
		r.Put("/admin/{id}/status", o.Admin.UpdateStatus)
	})

	r.Get("/health", o.Health.Handle)
	r.Get("/api/status", o.Health.Status)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(o.Pages.NotFound)

	return r
}

func limitedJSON(w http.ResponseWriter, _ *http.Request, _ ratelimit.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(handlers.APIResponse{Success: false, Message: ratelimit.SubmissionMessage})
}
