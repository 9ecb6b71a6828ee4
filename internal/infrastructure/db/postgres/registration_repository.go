package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/westem/event-registration/internal/core/domain"
)

// RegistrationRepository implements ports.RegistrationRepository on
// PostgreSQL. The UNIQUE (user_id, event_id) constraint serialises
// concurrent joins for the same pair.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// Join inserts the membership pair if absent. ON CONFLICT DO NOTHING makes
// a repeated join a silent no-op rather than an error.
func (r *RegistrationRepository) Join(ctx context.Context, userID, eventID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO registrations (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`, userID, eventID)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// Leave deletes the pair if present; deleting an absent pair is a no-op.
func (r *RegistrationRepository) Leave(ctx context.Context, userID, eventID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		DELETE FROM registrations WHERE user_id = $1 AND event_id = $2
	`, userID, eventID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) IsJoined(ctx context.Context, userID, eventID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var joined bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2)
	`, userID, eventID).Scan(&joined)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return joined, nil
}

func (r *RegistrationRepository) Count(ctx context.Context, eventID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM registrations WHERE event_id = $1
	`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

// ListParticipants returns the roster of an event with contact details.
func (r *RegistrationRepository) ListParticipants(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.email, u.phone
		FROM registrations r
		JOIN users u ON r.user_id = u.id
		WHERE r.event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return participants, nil
}
