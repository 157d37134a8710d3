package usecase

import (
	"strings"
	"time"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// Normalizer turns a validated RawLead into the canonical entity.Lead.
type Normalizer struct {
	Now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize cleans text, applies defaults for optional fields and stamps
// the submission time. It has no side effects.
func (n *Normalizer) Normalize(raw RawLead) entity.Lead {
	now := time.Now
	if n != nil && n.Now != nil {
		now = n.Now
	}

	return entity.Lead{
		StudentName:  strings.TrimSpace(raw.StudentName),
		ParentName:   strings.TrimSpace(raw.ParentName),
		Phone:        stripWhitespace(raw.Phone),
		Email:        strings.ToLower(strings.TrimSpace(raw.Email)),
		Age:          strings.TrimSpace(raw.Age),
		Subjects:     resolveSubjects(raw.Subjects),
		LearningGoal: strings.TrimSpace(raw.LearningGoal),
		Area:         strings.TrimSpace(raw.Area),
		TutorGender:  strings.TrimSpace(raw.TutorGender),
		SessionType:  orDefault(raw.SessionType, entity.DefaultSessionType),
		Budget:       strings.TrimSpace(raw.Budget),
		Experience:   orDefault(raw.Experience, entity.DefaultExperience),
		Message:      strings.TrimSpace(raw.Message),
		SubmittedAt:  now(),
		Status:       entity.LeadStatusNew,
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// resolveSubjects trims each selection, drops blanks and repeats, and keeps
// the submitted order.
func resolveSubjects(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
