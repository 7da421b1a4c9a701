package checkin

import (
	"fmt"
	"time"
)

// CheckIn is a player's declaration of presence for one league night.
// Check-outs deactivate the record; it is never hard-deleted so match history
// stays attributable.
type CheckIn struct {
	ID           string
	NightID      string
	PlayerID     string
	Active       bool
	CheckedInAt  time.Time
	CheckedOutAt *time.Time
}

func (c CheckIn) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("check-in id is required")
	}
	if c.NightID == "" {
		return fmt.Errorf("check-in night id is required")
	}
	if c.PlayerID == "" {
		return fmt.Errorf("check-in player id is required")
	}

	return nil
}
