package contracts

import "time"

// EventImpact is the expected market impact of a calendar event.
type EventImpact string

const (
	ImpactHigh   EventImpact = "high"
	ImpactMedium EventImpact = "medium"
	ImpactLow    EventImpact = "low"
)

// CalendarEvent is one upcoming macro event from the calendar source.
type CalendarEvent struct {
	Country     string      `json:"country"`
	Currency    string      `json:"currency"`
	Title       string      `json:"title"`
	Impact      EventImpact `json:"impact"`
	ScheduledAt time.Time   `json:"scheduled_at"`
}
