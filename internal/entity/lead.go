package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusMatched   LeadStatus = "matched"
	LeadStatusClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusMatched, LeadStatusClosed:
		return true
	}
	return false
}

// Defaults applied by the normalizer when an optional field is absent.
const (
	DefaultSessionType = "home"
	DefaultExperience  = "complete-beginner"
)

// Lead is a tutoring request captured from the contact form, after
// normalization.
type Lead struct {
	ID           string     `json:"id,omitempty"`
	StudentName  string     `json:"studentName"`
	ParentName   string     `json:"parentName"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Age          string     `json:"age"`
	Subjects     []string   `json:"subjects"`
	LearningGoal string     `json:"learningGoal"`
	Area         string     `json:"area"`
	TutorGender  string     `json:"tutorGender"`
	SessionType  string     `json:"sessionType"`
	Budget       string     `json:"budget"`
	Experience   string     `json:"experience"`
	Message      string     `json:"message"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	Status       LeadStatus `json:"status"`
}

type LeadRepositoryInterface interface {
	Save(ctx context.Context, lead *Lead) (string, error)
	List(ctx context.Context) ([]Lead, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus) (bool, error)
}

var (
	AgeGroups     = []string{"10-14", "15-18", "18-22", "22+"}
	LearningGoals = []string{"beginner", "school-project", "job-prep", "career-switch", "skill-upgrade", "certification", "portfolio"}
	TutorGenders  = []string{"male", "female"}
	SessionTypes  = []string{"home", "online", "both"}
	BudgetRanges  = []string{"500-800", "800-1200", "1200-1800", "1800+"}
	Experiences   = []string{"complete-beginner", "some-basics", "intermediate", "advanced"}
)
