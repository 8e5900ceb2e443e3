package store

import (
	"context"
	"testing"
	"time"

	"github.com/01moynul/sellergen-golang/internal/config"
	"github.com/01moynul/sellergen-golang/internal/database"
	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenDB(config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "seller@example.com", "hash", "2026-10-16")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.PlanFree, user.Plan)

	byEmail, err := s.GetUserByEmail(ctx, "seller@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.Equal(t, 0, byEmail.UsageCount)
	assert.True(t, byEmail.UsedOn("2026-10-16"))
	assert.Equal(t, "", byEmail.RoleName())

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "seller@example.com", byID.Email)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "dup@example.com", "hash", "2026-10-16")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "dup@example.com", "other", "2026-10-16")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestUniqueKeyViolationIsDuplicate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.DB.Exec("INSERT INTO users (email, password, created_at) VALUES (?, ?, ?)", "x@example.com", "h", time.Now())
	require.NoError(t, err)
	_, err = s.DB.Exec("INSERT INTO users (email, password, created_at) VALUES (?, ?, ?)", "x@example.com", "h", time.Now())
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))
}

func TestSetPlanAndRole(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "plan@example.com", "hash", "2026-10-16")
	require.NoError(t, err)

	require.NoError(t, s.ActivatePro(ctx, "plan@example.com", ""))
	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, got.Plan)

	require.NoError(t, s.SetPlanByID(ctx, user.ID, models.PlanFree))
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, got.Plan)

	require.NoError(t, s.SetRole(ctx, "plan@example.com", models.RoleAdmin))
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	assert.ErrorIs(t, s.SetPlanByID(ctx, 4242, models.PlanPro), ErrUserNotFound)
	assert.ErrorIs(t, s.ActivatePro(ctx, "ghost@example.com", "pi_1"), ErrUserNotFound)
	assert.ErrorIs(t, s.SetRole(ctx, "ghost@example.com", models.RoleAdmin), ErrUserNotFound)
}

func TestActivateProConsumesPayment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "first@example.com", "hash", "2026-10-16")
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, "second@example.com", "hash", "2026-10-16")
	require.NoError(t, err)

	require.NoError(t, s.ActivatePro(ctx, "first@example.com", "pi_paid"))

	// The same payment cannot upgrade another account, or the same one twice.
	assert.ErrorIs(t, s.ActivatePro(ctx, "second@example.com", "pi_paid"), ErrPaymentUsed)
	assert.ErrorIs(t, s.ActivatePro(ctx, "first@example.com", "pi_paid"), ErrPaymentUsed)

	got, err := s.GetUserByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, got.Plan)

	// A failed upgrade does not burn the payment.
	assert.ErrorIs(t, s.ActivatePro(ctx, "ghost@example.com", "pi_other"), ErrUserNotFound)
	assert.NoError(t, s.ActivatePro(ctx, "second@example.com", "pi_other"))
}

func TestGrantAdmins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boss, err := s.CreateUser(ctx, "boss@example.com", "hash", "2026-10-16")
	require.NoError(t, err)

	missing, err := s.GrantAdmins(ctx, []string{"boss@example.com", "later@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"later@example.com"}, missing)

	got, err := s.GetUserByID(ctx, boss.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	// Granting again is harmless.
	missing, err = s.GrantAdmins(ctx, []string{"boss@example.com"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestListUsersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := s.CreateUser(ctx, email, "hash", "2026-10-16")
		require.NoError(t, err)
	}

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "c@example.com", users[0].Email)
	assert.Equal(t, "a@example.com", users[2].Email)
}

func TestDeleteUserCascadesLogs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	victim, err := s.CreateUser(ctx, "victim@example.com", "hash", "2026-10-16")
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, "bystander@example.com", "hash", "2026-10-16")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.InsertUsageLog(ctx, &models.UsageLog{Email: "victim@example.com", ActionType: models.ActionListing, InputText: "in", OutputText: "out"}))
	}
	require.NoError(t, s.InsertUsageLog(ctx, &models.UsageLog{Email: "bystander@example.com", ActionType: models.ActionKeywords, InputText: "in", OutputText: "out"}))

	require.NoError(t, s.DeleteUser(ctx, victim.ID))

	n, err := s.CountUsageLogs(ctx, "victim@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = s.CountUsageLogs(ctx, "bystander@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetUserByID(ctx, victim.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, victim.ID), ErrUserNotFound)

	// The email is free again.
	_, err = s.CreateUser(ctx, "victim@example.com", "hash", "2026-10-17")
	assert.NoError(t, err)
}

func TestUsageLogsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	for i, action := range []string{models.ActionListing, models.ActionKeywords, models.ActionListing} {
		require.NoError(t, s.InsertUsageLog(ctx, &models.UsageLog{
			Email:      "log@example.com",
			ActionType: action,
			InputText:  "input",
			OutputText: "output",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, err := s.ListUsageLogs(ctx, "log@example.com")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.True(t, logs[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, models.ActionKeywords, logs[1].ActionType)
	assert.True(t, logs[2].CreatedAt.Equal(base))

	empty, err := s.ListUsageLogs(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestResetDailyUsageOncePerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "day@example.com", "hash", "2026-10-15")
	require.NoError(t, err)
	_, err = s.DB.Exec("UPDATE users SET usage_count = 4 WHERE email = ?", "day@example.com")
	require.NoError(t, err)

	reset, err := s.ResetDailyUsage(ctx, "day@example.com", "2026-10-16")
	require.NoError(t, err)
	assert.True(t, reset)

	ok, err := s.IncrementUsage(ctx, "day@example.com", 5)
	require.NoError(t, err)
	assert.True(t, ok)

	reset, err = s.ResetDailyUsage(ctx, "day@example.com", "2026-10-16")
	require.NoError(t, err)
	assert.False(t, reset)

	user, err := s.GetUserByEmail(ctx, "day@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, user.UsageCount)
	assert.True(t, user.UsedOn("2026-10-16"))
}

func TestIncrementUsageCeiling(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "cap@example.com", "hash", "2026-10-16")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ok, err := s.IncrementUsage(ctx, "cap@example.com", 2)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := s.IncrementUsage(ctx, "cap@example.com", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetPasswordSingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	_, err := s.CreateUser(ctx, "reset@example.com", "old-hash", "2026-10-16")
	require.NoError(t, err)
	require.NoError(t, s.SetResetToken(ctx, "reset@example.com", "tok-1", now.Add(30*time.Minute)))

	require.NoError(t, s.ResetPassword(ctx, "tok-1", "new-hash", now.Add(5*time.Minute)))

	user, err := s.GetUserByEmail(ctx, "reset@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
	assert.False(t, user.ResetToken.Valid)

	assert.ErrorIs(t, s.ResetPassword(ctx, "tok-1", "again", now.Add(6*time.Minute)), ErrInvalidResetToken)
	assert.ErrorIs(t, s.ResetPassword(ctx, "", "again", now), ErrInvalidResetToken)
}

func TestResetPasswordExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	_, err := s.CreateUser(ctx, "late@example.com", "old-hash", "2026-10-16")
	require.NoError(t, err)
	require.NoError(t, s.SetResetToken(ctx, "late@example.com", "tok-2", now.Add(30*time.Minute)))

	assert.ErrorIs(t, s.ResetPassword(ctx, "tok-2", "new-hash", now.Add(31*time.Minute)), ErrInvalidResetToken)

	assert.ErrorIs(t, s.SetResetToken(ctx, "ghost@example.com", "tok-3", now), ErrUserNotFound)
}

func TestGetPlanCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "f1@example.com", "hash", "2026-10-16")
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, "f2@example.com", "hash", "2026-10-15")
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, "p1@example.com", "hash", "2026-10-16")
	require.NoError(t, err)
	require.NoError(t, s.ActivatePro(ctx, "p1@example.com", ""))

	counts, err := s.GetPlanCounts(ctx, "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, PlanCounts{Total: 3, Free: 2, Pro: 1, ActiveToday: 2}, counts)
}
