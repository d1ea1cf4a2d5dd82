package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/abrilera/tangopulse/internal/domain"
)

// defaultAttendance is assumed for organizers and venues without history.
const defaultAttendance = 50.0

// Blend weights for the attendance baseline: organizer track record counts
// more than the venue's.
const (
	organizerWeight = 0.6
	venueWeight     = 0.4
)

var eventTypeMultipliers = map[string]float64{
	"milonga":  1.0,
	"workshop": 0.8,
	"festival": 1.5,
	"class":    0.7,
	"practica": 0.6,
}

// PredictAttendance estimates turnout for an upcoming event from the
// organizer's and venue's past events. now anchors the lead-time adjustment;
// callers pass the injected clock's current time.
func PredictAttendance(now time.Time, event domain.EventFeatures, organizerHistory, venueHistory []domain.EventStats) domain.AttendancePrediction {
	baseline := organizerWeight*averageAttendance(organizerHistory) + venueWeight*averageAttendance(venueHistory)

	var factors []domain.AttendanceFactor
	apply := func(name string, multiplier float64) {
		if multiplier == 1.0 {
			return
		}
		baseline *= multiplier
		factors = append(factors, domain.AttendanceFactor{
			Name:      name,
			ImpactPct: (multiplier - 1) * 100,
		})
	}

	apply("event type", typeMultiplier(event.EventType))
	apply("price", priceMultiplier(event.Price))
	apply("lead time", leadTimeMultiplier(now, event.StartsAt))
	apply("day of week", weekdayMultiplier(event.StartsAt.Weekday()))

	if event.Capacity > 0 && baseline > float64(event.Capacity) {
		baseline = float64(event.Capacity)
		factors = append(factors, domain.AttendanceFactor{Name: "capacity limit", ImpactPct: 0})
	}

	predicted := int(math.Round(baseline))

	return domain.AttendancePrediction{
		Attendance: predicted,
		Min:        int(math.Round(baseline * 0.7)),
		Max:        int(math.Round(baseline * 1.3)),
		Confidence: attendanceConfidence(len(organizerHistory) + len(venueHistory)),
		Factors:    factors,
	}
}

func averageAttendance(history []domain.EventStats) float64 {
	if len(history) == 0 {
		return defaultAttendance
	}
	total := 0
	for _, s := range history {
		total += s.ActualAttendance
	}
	return float64(total) / float64(len(history))
}

func typeMultiplier(eventType string) float64 {
	if m, ok := eventTypeMultipliers[strings.ToLower(eventType)]; ok {
		return m
	}
	return 1.0
}

func priceMultiplier(price float64) float64 {
	switch {
	case price == 0:
		return 1.3
	case price > 50:
		return 0.7
	default:
		return 1.0
	}
}

func leadTimeMultiplier(now, startsAt time.Time) float64 {
	days := startsAt.Sub(now).Hours() / 24
	switch {
	case days < 7:
		return 0.8
	case days > 90:
		return 0.9
	default:
		return 1.0
	}
}

func weekdayMultiplier(day time.Weekday) float64 {
	switch day {
	case time.Friday, time.Saturday:
		return 1.2
	case time.Sunday:
		return 1.1
	default:
		return 1.0
	}
}

func attendanceConfidence(samples int) float64 {
	switch {
	case samples == 0:
		return 0.3
	case samples < 5:
		return 0.5
	case samples < 15:
		return 0.7
	default:
		return 0.85
	}
}
