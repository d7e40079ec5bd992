package domain

import "time"

// Cutoff is the inclusive lower bound of the recency window.
// It is computed once per run and shared by every query and sub-fetch.
type Cutoff struct {
	at time.Time
}

// NewCutoff returns the cutoff lying timeframe before now.
func NewCutoff(now time.Time, timeframe time.Duration) Cutoff {
	return Cutoff{at: now.Add(-timeframe).UTC()}
}

// CutoffAt wraps an absolute timestamp.
func CutoffAt(t time.Time) Cutoff {
	return Cutoff{at: t.UTC()}
}

// Time returns the cutoff timestamp.
func (c Cutoff) Time() time.Time {
	return c.at
}

// Includes reports whether t is at or after the cutoff.
func (c Cutoff) Includes(t time.Time) bool {
	return !t.Before(c.at)
}

// Date formats the cutoff day for search qualifiers such as "updated:>=".
func (c Cutoff) Date() string {
	return c.at.Format("2006-01-02")
}
