package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a stored, immutable session.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Time      float64   `json:"time"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Candidate is the unvalidated create payload. Pointer fields distinguish
// an absent value from a zero value.
type Candidate struct {
	Name      *string    `json:"name"`
	Time      *float64   `json:"time"`
	CreatedAt *Timestamp `json:"createdAt"`
}

// NewCandidate builds a fully populated candidate.
func NewCandidate(name string, elapsed float64, createdAt time.Time) Candidate {
	ts := Timestamp{Time: createdAt}
	return Candidate{Name: &name, Time: &elapsed, CreatedAt: &ts}
}

// Address returns the list-facing identifier of a record within a collection.
func Address(collection, id string) string {
	if collection == "" {
		return id
	}
	return collection + "-" + id
}

// isoLayout mirrors Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// jsDateLayout is the prefix of Date.prototype.toString, without the zone name suffix.
const jsDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

// maxEpochMillis is the largest magnitude a browser Date can hold.
const maxEpochMillis = 8.64e15

// Timestamp serializes as a UTC ISO-8601 string with millisecond precision.
type Timestamp struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(isoLayout))
}

// UnmarshalJSON accepts ISO-8601 strings, browser Date strings and epoch milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("timestamp is null")
	}

	if len(data) > 0 && data[0] != '"' {
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		if math.IsNaN(ms) || math.Abs(ms) > maxEpochMillis {
			return fmt.Errorf("timestamp %s out of range", data)
		}
		parsed := time.UnixMilli(int64(ms)).UTC()
		if err := checkYear(parsed); err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	if err := checkYear(parsed); err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses the textual forms a client may send for createdAt.
func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed.UTC(), nil
	}

	// "Sat Oct 18 2026 10:00:00 GMT+0200 (Central European Summer Time)"
	if idx := strings.Index(value, " ("); idx > 0 {
		value = value[:idx]
	}
	if parsed, err := time.Parse(jsDateLayout, value); err == nil {
		return parsed.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// checkYear keeps timestamps within what the four-digit ISO layout can express.
func checkYear(ts time.Time) error {
	if y := ts.Year(); y < 0 || y > 9999 {
		return fmt.Errorf("timestamp %s out of range", ts.Format(time.RFC3339))
	}
	return nil
}
