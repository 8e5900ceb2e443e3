package store

import (
	"context"
	"fmt"
)

// ResetDailyUsage zeroes the counter and stamps today, unless the row already
// belongs to today. The condition makes the reset happen once per day even
// when several requests race on the first call.
func (s *Store) ResetDailyUsage(ctx context.Context, email, today string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users
		SET usage_count = 0, last_used = ?
		WHERE email = ? AND (last_used IS NULL OR last_used <> ?)`,
		today, email, today,
	)
	if err != nil {
		return false, fmt.Errorf("reset daily usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reset daily usage: %w", err)
	}
	return n > 0, nil
}

// IncrementUsage adds one to the counter only while it is below limit. It
// reports false when the ceiling was already reached.
func (s *Store) IncrementUsage(ctx context.Context, email string, limit int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users
		SET usage_count = usage_count + 1
		WHERE email = ? AND usage_count < ?`,
		email, limit,
	)
	if err != nil {
		return false, fmt.Errorf("increment usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment usage: %w", err)
	}
	return n > 0, nil
}
