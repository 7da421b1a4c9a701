package partnership

import (
	"fmt"
	"time"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Request is one half of the partner handshake: requester asks requested to
// pair up for the night. Terminal once accepted or rejected.
type Request struct {
	ID          string
	NightID     string
	RequesterID string
	RequestedID string
	Status      RequestStatus
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

func (r Request) Involves(playerID string) bool {
	return r.RequesterID == playerID || r.RequestedID == playerID
}

func (r Request) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("request id is required")
	}
	if r.NightID == "" {
		return fmt.Errorf("request night id is required")
	}
	if r.RequesterID == "" || r.RequestedID == "" {
		return fmt.Errorf("request needs both players")
	}
	if r.RequesterID == r.RequestedID {
		return fmt.Errorf("request cannot target the requester")
	}

	return nil
}

// Partnership is a confirmed pair of players for one night. A player belongs
// to at most one active partnership per night. Games played tonight is never
// stored on this record; it is derived from completed match history.
type Partnership struct {
	ID            string
	NightID       string
	Player1ID     string
	Player2ID     string
	Active        bool
	ConfirmedAt   time.Time
	DeactivatedAt *time.Time
}

func (p Partnership) Has(playerID string) bool {
	return p.Player1ID == playerID || p.Player2ID == playerID
}

// Teammate returns the other member of the pair.
func (p Partnership) Teammate(playerID string) (string, bool) {
	switch playerID {
	case p.Player1ID:
		return p.Player2ID, true
	case p.Player2ID:
		return p.Player1ID, true
	}

	return "", false
}

func (p Partnership) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("partnership id is required")
	}
	if p.NightID == "" {
		return fmt.Errorf("partnership night id is required")
	}
	if p.Player1ID == "" || p.Player2ID == "" {
		return fmt.Errorf("partnership needs both players")
	}
	if p.Player1ID == p.Player2ID {
		return fmt.Errorf("partnership cannot pair a player with themselves")
	}

	return nil
}
