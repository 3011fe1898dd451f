// Package notifications defines structured notification records and their
// Redis publisher.
package notifications

import "github.com/shopspring/decimal"

// Alert severities.
const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityCritical = "CRITICAL"
)

// TradeNotification is a structured record for an executed trade.
type TradeNotification struct {
	Direction      string          `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	InstrumentName string          `json:"instrument_name"`
	Price          decimal.Decimal `json:"price"`
}

// SystemAlert is a structured record for a system-level alert.
type SystemAlert struct {
	Component string `json:"component"`
	Event     string `json:"event"`
	Details   string `json:"details"`
	Severity  string `json:"severity"`
}

// NewSystemAlert builds an alert with the default CRITICAL severity.
func NewSystemAlert(component, event, details string) SystemAlert {
	return SystemAlert{
		Component: component,
		Event:     event,
		Details:   details,
		Severity:  SeverityCritical,
	}
}
