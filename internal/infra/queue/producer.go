package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// LeadSubmittedEvent is published for downstream CRM consumers once a lead
// has been accepted.
type LeadSubmittedEvent struct {
	LeadID       string    `json:"lead_id"`
	StudentName  string    `json:"student_name"`
	ParentName   string    `json:"parent_name,omitempty"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Age          string    `json:"age,omitempty"`
	Subjects     []string  `json:"subjects"`
	LearningGoal string    `json:"learning_goal"`
	Area         string    `json:"area"`
	TutorGender  string    `json:"tutor_gender,omitempty"`
	SessionType  string    `json:"session_type"`
	Budget       string    `json:"budget,omitempty"`
	Experience   string    `json:"experience"`
	Message      string    `json:"message,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type QuickCallPayload struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Subject     string    `json:"subject,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	mu sync.Mutex
	ch Publisher
}

func NewProducer(ch Publisher) *Producer {
	return &Producer{ch: ch}
}

func (p *Producer) PublishLeadSubmitted(ctx context.Context, lead entity.Lead) error {
	return p.publish(ctx, RoutingKeyLeadSubmitted, lead.ID, LeadSubmittedEvent{
		LeadID:       lead.ID,
		StudentName:  lead.StudentName,
		ParentName:   lead.ParentName,
		Phone:        lead.Phone,
		Email:        lead.Email,
		Age:          lead.Age,
		Subjects:     lead.Subjects,
		LearningGoal: lead.LearningGoal,
		Area:         lead.Area,
		TutorGender:  lead.TutorGender,
		SessionType:  lead.SessionType,
		Budget:       lead.Budget,
		Experience:   lead.Experience,
		Message:      lead.Message,
		SubmittedAt:  lead.SubmittedAt,
	})
}

func (p *Producer) PublishQuickCall(ctx context.Context, req entity.QuickCallRequest) error {
	return p.publish(ctx, RoutingKeyQuickCall, "", QuickCallPayload{
		Name:        req.Name,
		Phone:       req.Phone,
		Subject:     req.Subject,
		RequestedAt: req.RequestedAt,
	})
}

func (p *Producer) publish(ctx context.Context, routingKey, messageID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("queue: encode %s: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    messageID,
			Timestamp:    time.Now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("queue: publish %s: %w", routingKey, err)
	}
	return nil
}
