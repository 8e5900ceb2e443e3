package store

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/sellergen-golang/internal/models"
)

// InsertUsageLog appends one generation record.
func (s *Store) InsertUsageLog(ctx context.Context, entry *models.UsageLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO usage_logs (email, action_type, input_text, output_text, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Email, entry.ActionType, entry.InputText, entry.OutputText, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert usage log: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// ListUsageLogs returns every record of one user, newest first.
func (s *Store) ListUsageLogs(ctx context.Context, email string) ([]*models.UsageLog, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, email, action_type, input_text, output_text, created_at
		FROM usage_logs
		WHERE email = ?
		ORDER BY created_at DESC, id DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.UsageLog{}
	for rows.Next() {
		var entry models.UsageLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Email,
			&entry.ActionType,
			&entry.InputText,
			&entry.OutputText,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan usage log row: %w", err)
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage log rows: %w", err)
	}
	return logs, nil
}

// CountUsageLogs reports how many records one user has.
func (s *Store) CountUsageLogs(ctx context.Context, email string) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM usage_logs WHERE email = ?", email).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usage logs: %w", err)
	}
	return n, nil
}
