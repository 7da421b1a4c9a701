package match

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type ScoreStatus string

const (
	ScoreNone      ScoreStatus = "none"
	ScorePending   ScoreStatus = "pending"
	ScoreConfirmed ScoreStatus = "confirmed"
	ScoreDisputed  ScoreStatus = "disputed"
)

// Match is one game between two partnerships on one court. While active it
// holds the court; confirmation or admin override completes it and releases
// the court.
type Match struct {
	ID             string
	NightID        string
	Partnership1ID string
	Partnership2ID string
	CourtNumber    int
	Status         Status
	ScoreStatus    ScoreStatus

	Team1Score int
	Team2Score int

	// Pending fields hold a submitted-but-unconfirmed score. They are cleared
	// on confirmation, dispute and withdrawal.
	PendingTeam1Score  int
	PendingTeam2Score  int
	PendingSubmittedBy string

	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (m Match) HasPartnership(partnershipID string) bool {
	return m.Partnership1ID == partnershipID || m.Partnership2ID == partnershipID
}

// Opponent returns the other side of the match.
func (m Match) Opponent(partnershipID string) (string, bool) {
	switch partnershipID {
	case m.Partnership1ID:
		return m.Partnership2ID, true
	case m.Partnership2ID:
		return m.Partnership1ID, true
	}

	return "", false
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.NightID == "" {
		return fmt.Errorf("match night id is required")
	}
	if m.Partnership1ID == "" || m.Partnership2ID == "" {
		return fmt.Errorf("match needs both partnerships")
	}
	if m.Partnership1ID == m.Partnership2ID {
		return fmt.Errorf("match cannot pair a partnership with itself")
	}
	if m.CourtNumber <= 0 {
		return fmt.Errorf("match court number must be positive")
	}

	return nil
}
