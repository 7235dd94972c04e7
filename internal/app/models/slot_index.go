package models

// SlotIndex maps a day key to the time keys booked on that day, in
// insertion order. Days without bookings are never present.
type SlotIndex map[string][]string

type ReserveResult int

const (
	Reserved ReserveResult = iota
	AlreadyTaken
	DoctorUnavailable
	UnknownDoctor
)

func (r ReserveResult) String() string {
	switch r {
	case Reserved:
		return "Reserved"
	case AlreadyTaken:
		return "AlreadyTaken"
	case DoctorUnavailable:
		return "DoctorUnavailable"
	case UnknownDoctor:
		return "UnknownDoctor"
	}
	return "Unknown"
}

type ReleaseResult int

const (
	Released ReleaseResult = iota
	NotPresent
	ReleaseUnknownDoctor
)

func (r ReleaseResult) String() string {
	switch r {
	case Released:
		return "Released"
	case NotPresent:
		return "NotPresent"
	case ReleaseUnknownDoctor:
		return "UnknownDoctor"
	}
	return "Unknown"
}

func (s SlotIndex) Has(day, time string) bool {
	for _, taken := range s[day] {
		if taken == time {
			return true
		}
	}
	return false
}

// Reserve appends time to day. It reports false when the slot is already held.
func (s SlotIndex) Reserve(day, time string) bool {
	if s.Has(day, time) {
		return false
	}
	s[day] = append(s[day], time)
	return true
}

// Release removes time from day, dropping the day once it is empty.
func (s SlotIndex) Release(day, time string) bool {
	times, ok := s[day]
	if !ok {
		return false
	}
	kept := make([]string, 0, len(times))
	found := false
	for _, taken := range times {
		if taken == time && !found {
			found = true
			continue
		}
		kept = append(kept, taken)
	}
	if !found {
		return false
	}
	if len(kept) == 0 {
		delete(s, day)
		return true
	}
	s[day] = kept
	return true
}

func (s SlotIndex) Clone() SlotIndex {
	clone := make(SlotIndex, len(s))
	for day, times := range s {
		if len(times) == 0 {
			continue
		}
		clone[day] = append([]string(nil), times...)
	}
	return clone
}

func (s SlotIndex) Equal(other SlotIndex) bool {
	if len(s) != len(other) {
		return false
	}
	for day, times := range s {
		otherTimes, ok := other[day]
		if !ok || len(times) != len(otherTimes) {
			return false
		}
		for i := range times {
			if times[i] != otherTimes[i] {
				return false
			}
		}
	}
	return true
}

// Count returns the number of booked slots across all days.
func (s SlotIndex) Count() int {
	total := 0
	for _, times := range s {
		total += len(times)
	}
	return total
}
