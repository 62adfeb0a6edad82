package model

import (
	"fmt"
	"time"
)

// BatchProgress is the running aggregate of a batch. Only completed items
// contribute to the elapsed total, so the average ignores skipped items.
type BatchProgress struct {
	Completed  int           `json:"completed"`
	Skipped    int           `json:"skipped"`
	Total      int           `json:"total"`
	Cumulative time.Duration `json:"cumulative"`
}

// NewBatchProgress starts an aggregate for a batch of total items
func NewBatchProgress(total int) BatchProgress {
	return BatchProgress{Total: total}
}

// RecordCompleted accounts for one successfully finished item
func (p *BatchProgress) RecordCompleted(elapsed time.Duration) {
	p.Completed++
	p.Cumulative += elapsed
}

// RecordSkipped accounts for one item that exhausted its attempts
func (p *BatchProgress) RecordSkipped() {
	p.Skipped++
}

// Processed returns how many items have reached a terminal state
func (p BatchProgress) Processed() int {
	return p.Completed + p.Skipped
}

// Remaining returns how many items are still to be processed
func (p BatchProgress) Remaining() int {
	if r := p.Total - p.Processed(); r > 0 {
		return r
	}
	return 0
}

// Average returns the mean elapsed time of completed items, or 0 if none
func (p BatchProgress) Average() time.Duration {
	if p.Completed == 0 {
		return 0
	}
	return p.Cumulative / time.Duration(p.Completed)
}

// EstimatedRemaining multiplies the running average by the remaining items
func (p BatchProgress) EstimatedRemaining() time.Duration {
	return p.Average() * time.Duration(p.Remaining())
}

// Percent returns overall progress as an integer percentage
func (p BatchProgress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Processed() * 100 / p.Total
}

// FormatClock renders d as MM:SS, or HH:MM:SS once it reaches an hour
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
