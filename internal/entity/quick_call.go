package entity

import "time"

// QuickCallRequest asks for a call back without filling the full form.
type QuickCallRequest struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Subject     string    `json:"subject,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}
