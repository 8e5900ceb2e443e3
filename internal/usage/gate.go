// Package usage enforces the daily generation limit of free-plan users.
package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/sellergen-golang/internal/models"
	"github.com/01moynul/sellergen-golang/internal/store"
)

// FreeDailyLimit is the default number of generation calls a free user gets per day.
const FreeDailyLimit = 5

var (
	ErrLimitExceeded = errors.New("free limit reached")
	ErrUnknownUser   = errors.New("unknown user")
)

// Store is the part of the credential store the gate needs.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ResetDailyUsage(ctx context.Context, email, today string) (bool, error)
	IncrementUsage(ctx context.Context, email string, limit int) (bool, error)
}

// Gate decides whether a generation call may run and counts it.
type Gate struct {
	store Store
	limit int
	now   func() time.Time
}

func NewGate(s Store, limit int) *Gate {
	if limit <= 0 {
		limit = FreeDailyLimit
	}
	return &Gate{store: s, limit: limit, now: time.Now}
}

// WithClock replaces the time source.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

func (g *Gate) Limit() int {
	return g.limit
}

// Today is the calendar day the gate currently counts against.
func (g *Gate) Today() string {
	return models.DateKey(g.now())
}

// Check lets the call through or returns ErrLimitExceeded / ErrUnknownUser.
// The counter is reset on the first call of a new day for every plan; pro users
// are never counted against the limit.
func (g *Gate) Check(ctx context.Context, email string) error {
	user, err := g.lookup(ctx, email)
	if err != nil {
		return err
	}

	today := g.Today()
	if !user.UsedOn(today) {
		if _, err := g.store.ResetDailyUsage(ctx, email, today); err != nil {
			return err
		}
	}

	if user.Plan.IsPro() {
		return nil
	}

	ok, err := g.store.IncrementUsage(ctx, email, g.limit)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLimitExceeded
	}
	return nil
}

// Snapshot is what GET /usage reports.
type Snapshot struct {
	Plan  models.Plan
	Used  int
	Limit int
}

// Snapshot reads the counter without writing. A counter left over from an
// earlier day counts as zero.
func (g *Gate) Snapshot(ctx context.Context, email string) (Snapshot, error) {
	user, err := g.lookup(ctx, email)
	if err != nil {
		return Snapshot{}, err
	}
	used := user.UsageCount
	if !user.UsedOn(g.Today()) {
		used = 0
	}
	return Snapshot{Plan: user.Plan, Used: used, Limit: g.limit}, nil
}

func (g *Gate) lookup(ctx context.Context, email string) (*models.User, error) {
	user, err := g.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("usage lookup: %w", err)
	}
	return user, nil
}
