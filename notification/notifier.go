// Package notification defines the notifier contract shared by the Discord
// and Telegram implementations.
package notification

import (
	"github.com/dustin/go-humanize"
)

// Severity classifies an event for display purposes only.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityAlert
)

// Field is a single labelled value attached to an event.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Event is one notification. Fields are rendered in order.
type Event struct {
	Title       string
	Description string
	Fields      []Field
	Severity    Severity
}

// Notifier delivers events to a single channel. Send failures are reported to
// the caller but never abort the loop that raised the event.
type Notifier interface {
	Send(event Event) error
}

// FormatAmount renders a volume or price value for human consumption,
// e.g. 1234567.89 -> "1,234,567.89".
func FormatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatPercent renders a percentage change with an explicit sign.
func FormatPercent(v float64) string {
	if v >= 0 {
		return "+" + humanize.CommafWithDigits(v, 2) + "%"
	}
	return humanize.CommafWithDigits(v, 2) + "%"
}
