// ABOUTME: Decoders for the Share service's fetch payload
// ABOUTME: Parses glucose record arrays and embedded-epoch timestamps

package share

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loopnlearn/dexshare/models"
)

// wallTimePattern matches the service's timestamp encoding, a literal
// string wrapping milliseconds since the Unix epoch: /Date(1462404576000)/
var wallTimePattern = regexp.MustCompile(`\((\d+)\)`)

// parseWallTime converts a /Date(<ms>)/ string to an absolute time.
func parseWallTime(value string) (time.Time, error) {
	m := wallTimePattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, &DateError{Value: value}
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, &DateError{Value: value}
	}
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC(), nil
}

// rawRecord mirrors one element of the fetch response array. Pointer
// fields distinguish absent or wrongly-typed fields from zero values.
type rawRecord struct {
	Value *int64  `json:"Value"`
	Trend *string `json:"Trend"`
	WT    *string `json:"WT"`
}

// decodeReadings parses the fetch response body into readings.
//
// A body that is not a JSON array at all (the service returns an error
// object in place of the data array when the session has expired) yields
// a DataError with ShapeMismatch set, which the fetch loop treats as a
// retry signal. A malformed individual record aborts the whole decode
// with a terminal DataError; no partial result is ever returned.
func decodeReadings(body string) ([]models.Reading, error) {
	// A top-level null (or any other non-array token) unmarshals into a
	// nil slice without error, so the array shape is checked up front
	trimmed := strings.TrimSpace(body)
	var elements []json.RawMessage
	if !strings.HasPrefix(trimmed, "[") || json.Unmarshal([]byte(trimmed), &elements) != nil {
		return nil, &DataError{
			Reason:        "expected a JSON array",
			Body:          body,
			ShapeMismatch: true,
		}
	}

	readings := make([]models.Reading, 0, len(elements))
	for _, element := range elements {
		var rec rawRecord
		if err := json.Unmarshal(element, &rec); err != nil {
			return nil, &DataError{Reason: "malformed glucose record", Body: body}
		}
		if rec.Value == nil || rec.Trend == nil || rec.WT == nil {
			return nil, &DataError{Reason: "glucose record missing Value, Trend, or WT", Body: body}
		}
		if *rec.Value < 0 || *rec.Value > 65535 {
			return nil, &DataError{Reason: "glucose value out of range", Body: body}
		}

		timestamp, err := parseWallTime(*rec.WT)
		if err != nil {
			return nil, err
		}

		readings = append(readings, models.Reading{
			Value:     uint16(*rec.Value),
			Trend:     models.TrendFromLabel(*rec.Trend),
			Timestamp: timestamp,
		})
	}

	return readings, nil
}
