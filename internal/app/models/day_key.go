package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrDayKeyFormat   = errors.New("day key must look like D_M_YYYY")
	ErrDayKeyCalendar = errors.New("day key is not a calendar date")
	ErrTimeKeyEmpty   = errors.New("time key is empty")
)

const dayKeySeparator = "_"

// DayKey identifies a calendar day in a slot index.
type DayKey struct {
	Day   int
	Month int
	Year  int
}

// ParseDayKey accepts D_M_YYYY with or without zero padding.
func ParseDayKey(raw string) (DayKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), dayKeySeparator)
	if len(parts) != 3 {
		return DayKey{}, ErrDayKeyFormat
	}

	// Day and month take one or two digits, the year exactly four.
	maxWidths := [3]int{2, 2, 4}
	if len(parts[2]) != maxWidths[2] {
		return DayKey{}, ErrDayKeyFormat
	}

	values := make([]int, 3)
	for i, part := range parts {
		if part == "" || len(part) > maxWidths[i] {
			return DayKey{}, ErrDayKeyFormat
		}
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 || strings.HasPrefix(part, "+") {
			return DayKey{}, ErrDayKeyFormat
		}
		values[i] = value
	}

	key := DayKey{Day: values[0], Month: values[1], Year: values[2]}
	if key.Year < 1 || key.Month < 1 || key.Month > 12 || key.Day < 1 || key.Day > 31 {
		return DayKey{}, ErrDayKeyCalendar
	}
	date := key.Time()
	if date.Day() != key.Day || int(date.Month()) != key.Month {
		return DayKey{}, fmt.Errorf("%w: %s", ErrDayKeyCalendar, raw)
	}
	return key, nil
}

// CanonicalDayKey parses raw and renders it unpadded, so that 05_07_2025
// and 5_7_2025 address the same slot.
func CanonicalDayKey(raw string) (string, error) {
	key, err := ParseDayKey(raw)
	if err != nil {
		return "", err
	}
	return key.String(), nil
}

func (k DayKey) String() string {
	return fmt.Sprintf("%d_%d_%d", k.Day, k.Month, k.Year)
}

func (k DayKey) Time() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// NormalizeTimeKey trims surrounding whitespace. Time keys are otherwise opaque.
func NormalizeTimeKey(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrTimeKeyEmpty
	}
	return trimmed, nil
}
