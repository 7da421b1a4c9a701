package night

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Court is one physical court in a night's roster. The number is the stable
// identity; the label is what organizers print on the whiteboard.
type Court struct {
	Number int
	Label  string
}

// Instance is one dated occurrence of the recurring league night. It owns
// every check-in, partnership request, partnership and match created during
// that night.
type Instance struct {
	ID                string
	Date              time.Time
	Status            Status
	Courts            []Court
	AutoAssignEnabled bool
	StartsAt          time.Time
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

func (i Instance) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("night id is required")
	}
	if i.Date.IsZero() {
		return fmt.Errorf("night date is required")
	}

	return ValidateCourts(i.Courts)
}

// ValidateCourts rejects empty rosters, blank labels and duplicate numbers.
func ValidateCourts(courts []Court) error {
	if len(courts) == 0 {
		return fmt.Errorf("court list cannot be empty")
	}

	seen := make(map[int]struct{}, len(courts))
	for _, c := range courts {
		if c.Number <= 0 {
			return fmt.Errorf("court number must be positive, got %d", c.Number)
		}
		if c.Label == "" {
			return fmt.Errorf("court %d label is required", c.Number)
		}
		if _, dup := seen[c.Number]; dup {
			return fmt.Errorf("duplicate court number %d", c.Number)
		}
		seen[c.Number] = struct{}{}
	}

	return nil
}

func (i Instance) CourtByNumber(number int) (Court, bool) {
	for _, c := range i.Courts {
		if c.Number == number {
			return c, true
		}
	}

	return Court{}, false
}

// Template is the recurring-day blueprint an Instance is lazily materialized
// from when first requested for a date.
type Template struct {
	Weekday           time.Weekday
	StartHour         int
	StartMinute       int
	CourtLabels       []string
	AutoAssignEnabled bool
}

func (t Template) Validate() error {
	if t.StartHour < 0 || t.StartHour > 23 {
		return fmt.Errorf("template start hour out of range: %d", t.StartHour)
	}
	if t.StartMinute < 0 || t.StartMinute > 59 {
		return fmt.Errorf("template start minute out of range: %d", t.StartMinute)
	}
	if len(t.CourtLabels) == 0 {
		return fmt.Errorf("template court labels cannot be empty")
	}

	return nil
}

// InstanceFor builds the concrete instance for a date. Courts are numbered
// from 1 in template order.
func (t Template) InstanceFor(id string, date time.Time, now time.Time) Instance {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	courts := make([]Court, 0, len(t.CourtLabels))
	for idx, label := range t.CourtLabels {
		courts = append(courts, Court{Number: idx + 1, Label: label})
	}

	return Instance{
		ID:                id,
		Date:              day,
		Status:            StatusScheduled,
		Courts:            courts,
		AutoAssignEnabled: t.AutoAssignEnabled,
		StartsAt:          day.Add(time.Duration(t.StartHour)*time.Hour + time.Duration(t.StartMinute)*time.Minute),
		CreatedAt:         now,
	}
}
