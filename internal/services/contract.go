package services

import (
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/models"
)

// Lifecycle classes of a contract. They partition all contracts.
const (
	LifecycleActive   = "active"
	LifecycleExpiring = "expiring"
	LifecycleExpired  = "expired"
)

// ExpiringWindow is how close to its end date an active contract must be to
// count as expiring.
const ExpiringWindow = 30 * 24 * time.Hour

const dateLayout = "2006-01-02"

// DeriveEndDate advances start by months calendar months. When the target
// month is shorter than start's day, the end date is clamped to that month's
// last day, so 2024-01-31 plus one month is 2024-02-29 rather than March 2.
func DeriveEndDate(start time.Time, months int) time.Time {
	y, m, d := start.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, start.Location())
	if last := daysIn(first.Year(), first.Month(), start.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Lifecycle is a contract's class at a point in time together with the
// whole-day countdown shown next to it. DaysRemaining is negative exactly
// when the contract is expired, either past its end date or terminated.
type Lifecycle struct {
	Status        string
	DaysRemaining int
}

// Evaluate classifies c at now. List filters and per-contract badges both use
// it, so they cannot disagree.
func Evaluate(c models.Contract, now time.Time) Lifecycle {
	remaining := c.EndDate.Sub(now)
	days := remaining.Hours() / 24

	switch {
	case remaining < 0:
		return Lifecycle{Status: LifecycleExpired, DaysRemaining: int(math.Floor(days))}
	case c.Status == models.ContractStatusTerminated:
		return Lifecycle{Status: LifecycleExpired, DaysRemaining: daysSinceTermination(c, now)}
	case remaining <= ExpiringWindow:
		return Lifecycle{Status: LifecycleExpiring, DaysRemaining: int(math.Ceil(days))}
	default:
		return Lifecycle{Status: LifecycleActive, DaysRemaining: int(math.Ceil(days))}
	}
}

// daysSinceTermination counts a terminated contract's days as negative, from
// -1 on the day it was terminated.
func daysSinceTermination(c models.Contract, now time.Time) int {
	if c.TerminatedAt == nil || c.TerminatedAt.After(now) {
		return -1
	}
	return -int(math.Floor(now.Sub(*c.TerminatedAt).Hours()/24)) - 1
}

// Classify returns only the class of c at now.
func Classify(c models.Contract, now time.Time) string {
	return Evaluate(c, now).Status
}
