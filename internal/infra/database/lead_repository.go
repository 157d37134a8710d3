package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) (string, error) {
	id := uuid.New().String()

	query := `
		INSERT INTO leads (
			id, student_name, parent_name, phone, email, age, subjects,
			learning_goal, area, tutor_gender, session_type, budget,
			experience, message, submitted_at, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.DB.ExecContext(ctx, query,
		id,
		lead.StudentName,
		lead.ParentName,
		lead.Phone,
		lead.Email,
		lead.Age,
		pq.Array(lead.Subjects),
		lead.LearningGoal,
		lead.Area,
		lead.TutorGender,
		lead.SessionType,
		lead.Budget,
		lead.Experience,
		lead.Message,
		lead.SubmittedAt,
		string(lead.Status),
	)
	if err != nil {
		return "", fmt.Errorf("insert lead: %w", err)
	}

	return id, nil
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT id, student_name, parent_name, phone, email, age, subjects,
			learning_goal, area, tutor_gender, session_type, budget,
			experience, message, submitted_at, status
		FROM leads
		ORDER BY submitted_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var l entity.Lead
		var status string
		if err := rows.Scan(
			&l.ID,
			&l.StudentName,
			&l.ParentName,
			&l.Phone,
			&l.Email,
			&l.Age,
			pq.Array(&l.Subjects),
			&l.LearningGoal,
			&l.Area,
			&l.TutorGender,
			&l.SessionType,
			&l.Budget,
			&l.Experience,
			&l.Message,
			&l.SubmittedAt,
			&status,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.Status = entity.LeadStatus(status)
		leads = append(leads, l)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res, err := r.DB.ExecContext(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	return n > 0, nil
}
