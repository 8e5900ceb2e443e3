package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/sellergen-golang/internal/models"
)

const userColumns = `id, email, password, user_plan, usage_count, last_used, role,
	reset_token, reset_token_expiry, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Plan,
		&user.UsageCount,
		&user.LastUsed,
		&user.Role,
		&user.ResetToken,
		&user.ResetTokenExpiry,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a free-plan user whose counter starts on the given day.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, today string) (*models.User, error) {
	// 1. --- Reject known emails up front ---
	var existing int64
	err := s.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", email).Scan(&existing)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	// 2. --- Insert; the unique key still guards against a concurrent signup ---
	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         models.PlanFree,
		UsageCount:   0,
		LastUsed:     nullString(today),
		CreatedAt:    time.Now().UTC(),
	}
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (email, password, user_plan, usage_count, last_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Plan, user.UsageCount, user.LastUsed, user.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read new user id: %w", err)
	}
	user.ID = id
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// ListUsers returns every user, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

// ActivatePro upgrades the user and records the payment behind the upgrade in
// one transaction. A payment ID upgrades one account once; an empty ID (test
// gateway) is not recorded.
func (s *Store) ActivatePro(ctx context.Context, email, paymentID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate pro: %w", err)
	}
	defer tx.Rollback()

	// 1. --- The account must exist ---
	var id int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user to upgrade: %w", err)
	}

	// 2. --- Consume the payment; the primary key rejects reuse ---
	if paymentID != "" {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO payments (payment_id, email, created_at) VALUES (?, ?, ?)",
			paymentID, email, time.Now().UTC(),
		)
		if err != nil {
			if isDuplicateKey(err) {
				return ErrPaymentUsed
			}
			return fmt.Errorf("record payment: %w", err)
		}
	}

	// 3. --- Upgrade ---
	if _, err := tx.ExecContext(ctx, "UPDATE users SET user_plan = ? WHERE id = ?", models.PlanPro, id); err != nil {
		return fmt.Errorf("set plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate pro: %w", err)
	}
	return nil
}

// SetPlanByID is the admin variant.
func (s *Store) SetPlanByID(ctx context.Context, id int64, plan models.Plan) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, "UPDATE users SET user_plan = ? WHERE id = ?", plan, id); err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// SetRole grants or clears (role == "") a role.
func (s *Store) SetRole(ctx context.Context, email, role string) error {
	res, err := s.DB.ExecContext(ctx, "UPDATE users SET role = ? WHERE email = ?", nullString(role), email)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.GetUserByEmail(ctx, email); err != nil {
			return err
		}
	}
	return nil
}

// GrantAdmins gives the admin role to each listed account and returns the
// emails that have no account yet.
func (s *Store) GrantAdmins(ctx context.Context, emails []string) ([]string, error) {
	var missing []string
	for _, email := range emails {
		err := s.SetRole(ctx, email, models.RoleAdmin)
		if errors.Is(err, ErrUserNotFound) {
			missing = append(missing, email)
			continue
		}
		if err != nil {
			return missing, err
		}
	}
	return missing, nil
}

// DeleteUser removes the user and all of their usage logs in one transaction.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	var email string
	err = tx.QueryRowContext(ctx, "SELECT email FROM users WHERE id = ?", id).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user to delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM usage_logs WHERE email = ?", email); err != nil {
		return fmt.Errorf("delete usage logs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete user: %w", err)
	}
	return nil
}

// SetResetToken stores a recovery token on the user row.
func (s *Store) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users
		SET reset_token = ?, reset_token_expiry = ?
		WHERE email = ?`,
		token, expiry.UTC(), email,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ResetPassword swaps the password for the holder of a live token and clears the
// token, so each token works once.
func (s *Store) ResetPassword(ctx context.Context, token, newPasswordHash string, now time.Time) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	var id int64
	var expiry sql.NullTime
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, reset_token_expiry FROM users WHERE reset_token = ?", token,
	).Scan(&id, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("find reset token: %w", err)
	}
	if !expiry.Valid || !now.Before(expiry.Time) {
		return ErrInvalidResetToken
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE users
		SET password = ?, reset_token = NULL, reset_token_expiry = NULL
		WHERE id = ? AND reset_token = ?`,
		newPasswordHash, id, token,
	)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if n == 0 {
		// Another request consumed the token first.
		return ErrInvalidResetToken
	}
	return nil
}
