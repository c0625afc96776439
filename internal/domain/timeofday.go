package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time at minute granularity, serialized as "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("time %q must be in HH:MM format", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time %q has a non-numeric hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time %q has a non-numeric minute", s)
	}
	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("time %q is out of range", s)
	}
	return t, nil
}

// MustTimeOfDay parses a "HH:MM" string and panics on failure.
// Intended for constants and tests.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether hour and minute are in range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// MinuteOfDay returns minutes since midnight. It defines the total order
// on TimeOfDay values.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.MinuteOfDay() < other.MinuteOfDay()
}

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.MinuteOfDay() > other.MinuteOfDay()
}

// MinutesUntil returns the signed distance in minutes from t to other.
func (t TimeOfDay) MinutesUntil(other TimeOfDay) int {
	return other.MinuteOfDay() - t.MinuteOfDay()
}

// SortTimes returns a chronologically sorted copy of times.
func SortTimes(times []TimeOfDay) []TimeOfDay {
	sorted := make([]TimeOfDay, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinuteOfDay() < sorted[j].MinuteOfDay()
	})
	return sorted
}

// ParseTimes parses a slice of "HH:MM" strings.
func ParseTimes(strs []string) ([]TimeOfDay, error) {
	times := make([]TimeOfDay, 0, len(strs))
	for _, s := range strs {
		t, err := ParseTimeOfDay(s)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

// FormatTimes renders times as "HH:MM" strings.
func FormatTimes(times []TimeOfDay) []string {
	strs := make([]string, 0, len(times))
	for _, t := range times {
		strs = append(strs, t.String())
	}
	return strs
}
