package handlers

import (
	"context"
	"net/http"
	"time"
)

const (
	Version    = "1.0.0"
	ServerName = "Expert Tech Tutors Hyderabad API"
)

// Dependency is a named health probe. A nil Check means the dependency is
// not configured for this deployment.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	Deps      []Dependency
	Env       string
	StartTime time.Time
	Timeout   time.Duration
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Environment  string            `json:"environment"`
	Uptime       string            `json:"uptime"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}

type StatusResponse struct {
	Server    string    `json:"server"`
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

func NewHealthHandler(env string, deps ...Dependency) *HealthHandler {
	return &HealthHandler{
		Deps:      deps,
		Env:       env,
		StartTime: time.Now(),
		Timeout:   2 * time.Second,
	}
}

// Handle (GET /health) answers 503 when any configured dependency fails.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string, len(h.Deps))
	status := "healthy"

	for _, d := range h.Deps {
		state := h.probe(r.Context(), d)
		deps[d.Name] = state
		if state != "healthy" && state != "not configured" {
			status = "degraded"
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      Version,
		Environment:  h.Env,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Timestamp:    time.Now().UTC(),
		Dependencies: deps,
	})
}

// Status (GET /api/status)
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	database := "Not configured"
	for _, d := range h.Deps {
		if d.Name != "database" || d.Check == nil {
			continue
		}
		if h.probe(r.Context(), d) == "healthy" {
			database = "Connected"
		} else {
			database = "Disconnected"
		}
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Server:    ServerName,
		Status:    "Active",
		Version:   Version,
		Database:  database,
		Timestamp: time.Now().UTC(),
	})
}

func (h *HealthHandler) probe(ctx context.Context, d Dependency) string {
	if d.Check == nil {
		return "not configured"
	}
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	if err := d.Check(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}
