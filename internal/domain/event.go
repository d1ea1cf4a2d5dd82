package domain

import "time"

// EventFeatures describes an upcoming event for attendance prediction.
type EventFeatures struct {
	EventType string    `json:"event_type"`
	Price     float64   `json:"price"`
	Capacity  int       `json:"capacity"`
	StartsAt  time.Time `json:"starts_at"`
}

// EventStats is one historical sample of a past event's turnout.
type EventStats struct {
	ActualAttendance int `json:"actual_attendance"`
}

// AttendanceFactor names one adjustment applied during attendance
// prediction together with its signed percentage impact, e.g. +50 for a
// festival-type multiplier of 1.5.
type AttendanceFactor struct {
	Name      string  `json:"name"`
	ImpactPct float64 `json:"impact_pct"`
}

// AttendancePrediction is the outcome of an attendance scoring call.
// Min and Max bound the estimate at 70% and 130% of the prediction.
type AttendancePrediction struct {
	Attendance int                `json:"attendance"`
	Min        int                `json:"min"`
	Max        int                `json:"max"`
	Confidence float64            `json:"confidence"`
	Factors    []AttendanceFactor `json:"factors"`
}
