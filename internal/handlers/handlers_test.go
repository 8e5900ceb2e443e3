package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLastUsed(t *testing.T) {
	assert.Equal(t, "16-10-2026", formatLastUsed("2026-10-16"))
	assert.Equal(t, "Never", formatLastUsed(""))
	assert.Equal(t, "Never", formatLastUsed("garbage"))
}

func TestTodayFallsBackToClock(t *testing.T) {
	h := &Handlers{Now: func() time.Time { return time.Date(2026, time.January, 2, 23, 0, 0, 0, time.UTC) }}
	assert.Equal(t, "2026-01-02", h.today())
}
