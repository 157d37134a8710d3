package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

const (
	maxBodyBytes = 1 << 20

	GenericFormError = "Something went wrong. Please try again or call us directly."
	GenericAPIError  = "Something went wrong. Please try again."
)

type APIResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Errors  []usecase.ValidationError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}

// decodeBody reads a JSON body into dst, or returns the parsed form for
// url-encoded and multipart bodies.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r) {
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(dst); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// formList returns every value submitted under key, including the
// bracketed "key[]" spelling some form libraries produce.
func formList(form url.Values, key string) []string {
	var out []string
	out = append(out, form[key]...)
	out = append(out, form[key+"[]"]...)
	return out
}
