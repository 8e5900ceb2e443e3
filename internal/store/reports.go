package store

import (
	"context"
	"fmt"

	"github.com/01moynul/sellergen-golang/internal/models"
)

// PlanCounts feeds the admin dashboard.
type PlanCounts struct {
	Total       int
	Free        int
	Pro         int
	ActiveToday int
}

// GetPlanCounts counts users per plan and those whose last gated call was today.
func (s *Store) GetPlanCounts(ctx context.Context, today string) (PlanCounts, error) {
	var counts PlanCounts

	// 1. Total users
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&counts.Total); err != nil {
		return counts, fmt.Errorf("count users: %w", err)
	}

	// 2. Free users
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE user_plan = ?", models.PlanFree).Scan(&counts.Free); err != nil {
		return counts, fmt.Errorf("count free users: %w", err)
	}

	// 3. Pro users
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE user_plan = ?", models.PlanPro).Scan(&counts.Pro); err != nil {
		return counts, fmt.Errorf("count pro users: %w", err)
	}

	// 4. Active today
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE last_used = ?", today).Scan(&counts.ActiveToday); err != nil {
		return counts, fmt.Errorf("count active users: %w", err)
	}

	return counts, nil
}
