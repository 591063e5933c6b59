package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

const defaultProfileName = "Default"

func (s *Store) ensureDefaultProfile(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM profiles WHERE active = 1`).Scan(&count); err != nil {
		return fmt.Errorf("count active profiles: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.execWithoutResultRetry(
		ctx,
		`INSERT INTO profiles (id, name, next_check_number, active) VALUES (?, ?, ?, 1)`,
		uuid.NewString(),
		defaultProfileName,
		1001,
	); err != nil {
		return fmt.Errorf("create default profile: %w", err)
	}
	return nil
}

// ActiveProfile returns the profile batch runs record against.
func (s *Store) ActiveProfile(ctx context.Context) (Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, next_check_number, active FROM profiles WHERE active = 1 LIMIT 1`)
	var (
		p      Profile
		active int
	)
	if err := row.Scan(&p.ID, &p.Name, &p.NextCheckNumber, &active); err != nil {
		if err == sql.ErrNoRows {
			return Profile{}, fmt.Errorf("no active profile configured")
		}
		return Profile{}, fmt.Errorf("load active profile: %w", err)
	}
	p.Active = active != 0
	return p, nil
}

// SetNextCheckNumber overrides the active profile's counter, for the CLI's
// explicit renumbering command.
func (s *Store) SetNextCheckNumber(ctx context.Context, profileID string, next int) error {
	if err := s.execWithoutResultRetry(
		ctx,
		`UPDATE profiles SET next_check_number = ? WHERE id = ?`,
		next,
		profileID,
	); err != nil {
		return fmt.Errorf("set next check number: %w", err)
	}
	return nil
}
