package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDeriveEndDate(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-01-15", 1, "2024-02-15"},
		{"2024-01-31", 12, "2025-01-31"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-11-30", 3, "2025-02-28"},
		{"2024-06-01", 6, "2024-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := DeriveEndDate(date(tt.start), tt.months)
			assert.Equal(t, tt.want, got.Format(dateLayout))
		})
	}
}

func terminatedContract(end, at time.Time) models.Contract {
	return models.Contract{Status: models.ContractStatusTerminated, EndDate: end, TerminatedAt: &at}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	active := func(end time.Time) models.Contract {
		return models.Contract{Status: models.ContractStatusActive, EndDate: end}
	}

	tests := []struct {
		name     string
		contract models.Contract
		want     string
		wantDays int
	}{
		{"ends in 15 days", active(now.AddDate(0, 0, 15)), LifecycleExpiring, 15},
		{"ends in 31 days", active(now.AddDate(0, 0, 31)), LifecycleActive, 31},
		{"ends in exactly 30 days", active(now.Add(ExpiringWindow)), LifecycleExpiring, 30},
		{"ends now", active(now), LifecycleExpiring, 0},
		{"ended an hour ago", active(now.Add(-time.Hour)), LifecycleExpired, -1},
		{"ended yesterday", active(now.AddDate(0, 0, -1)), LifecycleExpired, -1},
		{"terminated early", terminatedContract(now.AddDate(1, 0, 0), now.Add(-36*time.Hour)), LifecycleExpired, -2},
		{"terminated today", terminatedContract(now.AddDate(0, 0, 10), now.Add(-time.Hour)), LifecycleExpired, -1},
		{"terminated without a date", models.Contract{Status: models.ContractStatusTerminated, EndDate: now.AddDate(0, 2, 0)}, LifecycleExpired, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := Evaluate(tt.contract, now)
			assert.Equal(t, tt.want, lc.Status)
			assert.Equal(t, tt.wantDays, lc.DaysRemaining)
			assert.Equal(t, tt.want, Classify(tt.contract, now))
		})
	}
}

// The countdown sign and the class must always agree.
func TestEvaluateBadgeAgreesWithClass(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	for h := -24 * 40; h <= 24*40; h += 7 {
		end := now.Add(time.Duration(h) * time.Hour)
		for _, c := range []models.Contract{
			{Status: models.ContractStatusActive, EndDate: end},
			terminatedContract(end, now.Add(-time.Duration(h%72)*time.Hour)),
		} {
			lc := Evaluate(c, now)
			switch {
			case lc.DaysRemaining < 0:
				assert.Equal(t, LifecycleExpired, lc.Status, "status=%s hours=%d", c.Status, h)
			case lc.DaysRemaining <= 30:
				assert.Equal(t, LifecycleExpiring, lc.Status, "status=%s hours=%d", c.Status, h)
			default:
				assert.Equal(t, LifecycleActive, lc.Status, "status=%s hours=%d", c.Status, h)
			}
		}
	}
}
