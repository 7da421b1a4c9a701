package httpapi

import (
	"time"

	"github.com/courtside/league-night/internal/domain/checkin"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/partnership"
	"github.com/courtside/league-night/internal/usecase"
)

const dateLayout = "2006-01-02"

type courtDTO struct {
	Number int    `json:"number" validate:"required,min=1"`
	Label  string `json:"label" validate:"required,max=50"`
}

type nightDTO struct {
	ID                string     `json:"id"`
	Date              string     `json:"date"`
	Status            string     `json:"status"`
	Courts            []courtDTO `json:"courts"`
	AutoAssignEnabled bool       `json:"auto_assign_enabled"`
	StartsAt          time.Time  `json:"starts_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func nightToDTO(in night.Instance) nightDTO {
	courts := make([]courtDTO, 0, len(in.Courts))
	for _, c := range in.Courts {
		courts = append(courts, courtDTO{Number: c.Number, Label: c.Label})
	}

	return nightDTO{
		ID:                in.ID,
		Date:              in.Date.Format(dateLayout),
		Status:            string(in.Status),
		Courts:            courts,
		AutoAssignEnabled: in.AutoAssignEnabled,
		StartsAt:          in.StartsAt,
		CompletedAt:       in.CompletedAt,
	}
}

type checkinDTO struct {
	ID          string    `json:"id"`
	NightID     string    `json:"night_id"`
	PlayerID    string    `json:"player_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

func checkinToDTO(in checkin.CheckIn) checkinDTO {
	return checkinDTO{
		ID:          in.ID,
		NightID:     in.NightID,
		PlayerID:    in.PlayerID,
		CheckedInAt: in.CheckedInAt,
	}
}

type partnerRequestDTO struct {
	ID          string    `json:"id"`
	NightID     string    `json:"night_id"`
	RequesterID string    `json:"requester_id"`
	RequestedID string    `json:"requested_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func partnerRequestToDTO(in partnership.Request) partnerRequestDTO {
	return partnerRequestDTO{
		ID:          in.ID,
		NightID:     in.NightID,
		RequesterID: in.RequesterID,
		RequestedID: in.RequestedID,
		Status:      string(in.Status),
		CreatedAt:   in.CreatedAt,
	}
}

type partnershipDTO struct {
	ID          string    `json:"id"`
	NightID     string    `json:"night_id"`
	Player1ID   string    `json:"player1_id"`
	Player2ID   string    `json:"player2_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

func partnershipToDTO(in partnership.Partnership) partnershipDTO {
	return partnershipDTO{
		ID:          in.ID,
		NightID:     in.NightID,
		Player1ID:   in.Player1ID,
		Player2ID:   in.Player2ID,
		ConfirmedAt: in.ConfirmedAt,
	}
}

type matchDTO struct {
	ID                 string     `json:"id"`
	NightID            string     `json:"night_id"`
	Partnership1ID     string     `json:"partnership1_id"`
	Partnership2ID     string     `json:"partnership2_id"`
	CourtNumber        int        `json:"court_number"`
	Status             string     `json:"status"`
	ScoreStatus        string     `json:"score_status"`
	Team1Score         int        `json:"team1_score"`
	Team2Score         int        `json:"team2_score"`
	PendingTeam1Score  *int       `json:"pending_team1_score,omitempty"`
	PendingTeam2Score  *int       `json:"pending_team2_score,omitempty"`
	PendingSubmittedBy string     `json:"pending_submitted_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

func matchToDTO(in match.Match) matchDTO {
	out := matchDTO{
		ID:             in.ID,
		NightID:        in.NightID,
		Partnership1ID: in.Partnership1ID,
		Partnership2ID: in.Partnership2ID,
		CourtNumber:    in.CourtNumber,
		Status:         string(in.Status),
		ScoreStatus:    string(in.ScoreStatus),
		Team1Score:     in.Team1Score,
		Team2Score:     in.Team2Score,
		CreatedAt:      in.CreatedAt,
		CompletedAt:    in.CompletedAt,
	}
	if in.ScoreStatus == match.ScorePending {
		p1 := in.PendingTeam1Score
		p2 := in.PendingTeam2Score
		out.PendingTeam1Score = &p1
		out.PendingTeam2Score = &p2
		out.PendingSubmittedBy = in.PendingSubmittedBy
	}

	return out
}

type allocationResultDTO struct {
	Matches      []matchDTO `json:"matches"`
	WaitingAfter int        `json:"waiting_after"`
	FreeCourts   int        `json:"free_courts"`
	CourtsInUse  int        `json:"courts_in_use"`
	LimitedBy    string     `json:"limited_by"`
}

func allocationToDTO(in usecase.AllocationResult) allocationResultDTO {
	matches := make([]matchDTO, 0, len(in.Created))
	for _, m := range in.Created {
		matches = append(matches, matchToDTO(m))
	}

	return allocationResultDTO{
		Matches:      matches,
		WaitingAfter: in.WaitingAfter,
		FreeCourts:   in.FreeCourts,
		CourtsInUse:  in.CourtsInUse,
		LimitedBy:    string(in.LimitedBy),
	}
}

type queueEntryDTO struct {
	Position      int    `json:"position"`
	PartnershipID string `json:"partnership_id"`
	Player1ID     string `json:"player1_id"`
	Player2ID     string `json:"player2_id"`
	GamesPlayed   int    `json:"games_played"`
}

type playingEntryDTO struct {
	PartnershipID string `json:"partnership_id"`
	MatchID       string `json:"match_id"`
	CourtNumber   int    `json:"court_number"`
	CourtLabel    string `json:"court_label"`
}

type queueSnapshotDTO struct {
	NightID           string            `json:"night_id"`
	Waiting           []queueEntryDTO   `json:"waiting"`
	Playing           []playingEntryDTO `json:"playing"`
	FreeCourts        []courtDTO        `json:"free_courts"`
	CourtsInUse       int               `json:"courts_in_use"`
	CheckedInPlayers  int               `json:"checked_in_players"`
	UnpartneredCount  int               `json:"unpartnered_count"`
	AutoAssignEnabled bool              `json:"auto_assign_enabled"`
}

func queueSnapshotToDTO(in usecase.QueueSnapshot) queueSnapshotDTO {
	waiting := make([]queueEntryDTO, 0, len(in.Waiting))
	for _, e := range in.Waiting {
		waiting = append(waiting, queueEntryDTO{
			Position:      e.Position,
			PartnershipID: e.PartnershipID,
			Player1ID:     e.Player1ID,
			Player2ID:     e.Player2ID,
			GamesPlayed:   e.GamesPlayed,
		})
	}

	playing := make([]playingEntryDTO, 0, len(in.Playing))
	for _, e := range in.Playing {
		playing = append(playing, playingEntryDTO{
			PartnershipID: e.PartnershipID,
			MatchID:       e.MatchID,
			CourtNumber:   e.CourtNumber,
			CourtLabel:    e.CourtLabel,
		})
	}

	free := make([]courtDTO, 0, len(in.FreeCourts))
	for _, c := range in.FreeCourts {
		free = append(free, courtDTO{Number: c.Number, Label: c.Label})
	}

	return queueSnapshotDTO{
		NightID:           in.NightID,
		Waiting:           waiting,
		Playing:           playing,
		FreeCourts:        free,
		CourtsInUse:       in.CourtsInUse,
		CheckedInPlayers:  in.CheckedInPlayers,
		UnpartneredCount:  in.UnpartneredCount,
		AutoAssignEnabled: in.AutoAssignEnabled,
	}
}

type sendPartnerRequestRequest struct {
	RequestedID string `json:"requested_id" validate:"required"`
}

type submitScoreRequest struct {
	Team1Score int `json:"team1_score" validate:"min=0,max=999"`
	Team2Score int `json:"team2_score" validate:"min=0,max=999"`
}

type assignMatchRequest struct {
	Partnership1ID string `json:"partnership1_id" validate:"required"`
	Partnership2ID string `json:"partnership2_id" validate:"required"`
	CourtNumber    int    `json:"court_number" validate:"required,min=1"`
}

type adminCheckInRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type adminCreatePartnershipRequest struct {
	Player1ID string `json:"player1_id" validate:"required"`
	Player2ID string `json:"player2_id" validate:"required"`
}

type updateCourtsRequest struct {
	Courts []courtDTO `json:"courts" validate:"required,min=1,dive"`
}

type setAutoAssignRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
