package night

import (
	"testing"
	"time"
)

func TestValidateCourts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		courts  []Court
		wantErr bool
	}{
		{
			name:   "valid roster",
			courts: []Court{{Number: 1, Label: "Court 1"}, {Number: 2, Label: "Court 2"}},
		},
		{name: "empty roster", courts: nil, wantErr: true},
		{
			name:    "duplicate number",
			courts:  []Court{{Number: 1, Label: "A"}, {Number: 1, Label: "B"}},
			wantErr: true,
		},
		{
			name:    "blank label",
			courts:  []Court{{Number: 1, Label: ""}},
			wantErr: true,
		},
		{
			name:    "non-positive number",
			courts:  []Court{{Number: 0, Label: "Court 0"}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCourts(tc.courts)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTemplateInstanceFor(t *testing.T) {
	t.Parallel()

	template := Template{
		Weekday:           time.Thursday,
		StartHour:         19,
		StartMinute:       30,
		CourtLabels:       []string{"Center", "Back Left", "Back Right"},
		AutoAssignEnabled: true,
	}
	if err := template.Validate(); err != nil {
		t.Fatalf("template should be valid: %v", err)
	}

	created := time.Date(2026, 2, 12, 18, 45, 0, 0, time.UTC)
	instance := template.InstanceFor("night-001", time.Date(2026, 2, 12, 23, 59, 0, 0, time.UTC), created)

	if instance.Status != StatusScheduled {
		t.Fatalf("expected scheduled status, got %s", instance.Status)
	}
	if !instance.Date.Equal(time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date truncated to midnight, got %v", instance.Date)
	}
	if !instance.StartsAt.Equal(time.Date(2026, 2, 12, 19, 30, 0, 0, time.UTC)) {
		t.Fatalf("expected starts at 19:30, got %v", instance.StartsAt)
	}
	if len(instance.Courts) != 3 {
		t.Fatalf("expected 3 courts, got %d", len(instance.Courts))
	}
	for i, want := range []Court{{Number: 1, Label: "Center"}, {Number: 2, Label: "Back Left"}, {Number: 3, Label: "Back Right"}} {
		if instance.Courts[i] != want {
			t.Fatalf("court %d: expected %+v, got %+v", i, want, instance.Courts[i])
		}
	}
	if !instance.AutoAssignEnabled {
		t.Fatalf("expected auto-assignment enabled from template")
	}
	if err := instance.Validate(); err != nil {
		t.Fatalf("materialized instance should be valid: %v", err)
	}
}

func TestTemplateValidate(t *testing.T) {
	t.Parallel()

	base := Template{Weekday: time.Monday, StartHour: 19, StartMinute: 0, CourtLabels: []string{"Court 1"}}

	bad := base
	bad.StartHour = 24
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected hour out of range error")
	}

	bad = base
	bad.StartMinute = -1
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected minute out of range error")
	}

	bad = base
	bad.CourtLabels = nil
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected empty court labels error")
	}
}

func TestCourtByNumber(t *testing.T) {
	t.Parallel()

	instance := Instance{Courts: []Court{{Number: 1, Label: "Center"}, {Number: 3, Label: "Back"}}}

	court, ok := instance.CourtByNumber(3)
	if !ok || court.Label != "Back" {
		t.Fatalf("expected to find court 3, got %+v ok=%t", court, ok)
	}
	if _, ok := instance.CourtByNumber(2); ok {
		t.Fatalf("expected court 2 to be absent")
	}
}
