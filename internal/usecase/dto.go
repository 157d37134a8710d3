package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// StringList decodes from either a JSON string or a JSON array of strings,
// so a single selected subject arrives as a one-element list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*l = items
	return nil
}

// RawLead is the contact form as submitted, before validation.
type RawLead struct {
	StudentName  string     `json:"studentName"`
	ParentName   string     `json:"parentName"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Age          string     `json:"age"`
	Subjects     StringList `json:"subjects"`
	LearningGoal string     `json:"learningGoal"`
	Area         string     `json:"area"`
	TutorGender  string     `json:"tutorGender"`
	SessionType  string     `json:"sessionType"`
	Budget       string     `json:"budget"`
	Experience   string     `json:"experience"`
	Message      string     `json:"message"`
}

type SubmitLeadOutput struct {
	LeadID string
	Lead   entity.Lead
}

type QuickCallInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}
