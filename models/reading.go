// ABOUTME: Data models for glucose readings and trend codes
// ABOUTME: JSON-serializable structures shared by the client and CLI

package models

import "time"

// TrendCode is the ordinal direction/rate summary reported with each reading.
// Zero means the trend is unknown or was not computable by the service.
type TrendCode uint8

const (
	TrendNone           TrendCode = 0
	TrendDoubleUp       TrendCode = 1
	TrendSingleUp       TrendCode = 2
	TrendFortyFiveUp    TrendCode = 3
	TrendFlat           TrendCode = 4
	TrendFortyFiveDown  TrendCode = 5
	TrendSingleDown     TrendCode = 6
	TrendDoubleDown     TrendCode = 7
	TrendNotComputable  TrendCode = 8
	TrendRateOutOfRange TrendCode = 9
)

// trendLabels maps the service's human-readable trend strings to codes.
// Anything not listed here (including the literal "NONE") maps to TrendNone.
var trendLabels = map[string]TrendCode{
	"DoubleUp":          TrendDoubleUp,
	"SingleUp":          TrendSingleUp,
	"FortyFiveUp":       TrendFortyFiveUp,
	"Flat":              TrendFlat,
	"FortyFiveDown":     TrendFortyFiveDown,
	"SingleDown":        TrendSingleDown,
	"DoubleDown":        TrendDoubleDown,
	"NOT COMPUTABLE":    TrendNotComputable,
	"RATE OUT OF RANGE": TrendRateOutOfRange,
}

// TrendFromLabel converts a service trend label to its ordinal code.
// Unknown labels map to TrendNone rather than failing.
func TrendFromLabel(label string) TrendCode {
	return trendLabels[label]
}

// String returns the canonical label for a trend code.
func (t TrendCode) String() string {
	switch t {
	case TrendDoubleUp:
		return "DoubleUp"
	case TrendSingleUp:
		return "SingleUp"
	case TrendFortyFiveUp:
		return "FortyFiveUp"
	case TrendFlat:
		return "Flat"
	case TrendFortyFiveDown:
		return "FortyFiveDown"
	case TrendSingleDown:
		return "SingleDown"
	case TrendDoubleDown:
		return "DoubleDown"
	case TrendNotComputable:
		return "NotComputable"
	case TrendRateOutOfRange:
		return "RateOutOfRange"
	default:
		return "None"
	}
}

// Arrow returns a compact arrow representation for terminal display.
func (t TrendCode) Arrow() string {
	switch t {
	case TrendDoubleUp:
		return "↑↑"
	case TrendSingleUp:
		return "↑"
	case TrendFortyFiveUp:
		return "↗"
	case TrendFlat:
		return "→"
	case TrendFortyFiveDown:
		return "↘"
	case TrendSingleDown:
		return "↓"
	case TrendDoubleDown:
		return "↓↓"
	default:
		return "-"
	}
}

// Reading is a single glucose measurement from the Share service.
// Values are immutable once decoded.
type Reading struct {
	Value     uint16    `json:"value_mg_dl"`
	Trend     TrendCode `json:"trend"`
	Timestamp time.Time `json:"timestamp"`
}

// InRange reports whether the reading falls inside [low, high] mg/dL.
func (r Reading) InRange(low, high uint16) bool {
	return r.Value >= low && r.Value <= high
}
