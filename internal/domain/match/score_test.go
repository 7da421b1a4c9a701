package match

import (
	"errors"
	"testing"
)

func TestValidateScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		team1     int
		team2     int
		targetErr error
	}{
		{name: "regulation win", team1: 15, team2: 10, targetErr: nil},
		{name: "regulation win reversed", team1: 3, team2: 15, targetErr: nil},
		{name: "deuce win by two", team1: 15, team2: 13, targetErr: nil},
		{name: "overtime deuce win", team1: 16, team2: 14, targetErr: nil},
		{name: "extended deuce win", team1: 19, team2: 17, targetErr: nil},
		{name: "shutout", team1: 15, team2: 0, targetErr: nil},
		{name: "negative score", team1: -1, team2: 15, targetErr: ErrNegativeScore},
		{name: "tied score", team1: 15, team2: 15, targetErr: ErrTiedScore},
		{name: "winner below target", team1: 14, team2: 10, targetErr: ErrWinBelowTarget},
		{name: "margin of one", team1: 15, team2: 14, targetErr: ErrMarginTooSmall},
		{name: "deuce margin over two", team1: 17, team2: 13, targetErr: ErrDeuceMarginOver},
		{name: "deuce margin over two high", team1: 20, team2: 14, targetErr: ErrDeuceMarginOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateScore(tc.team1, tc.team2)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected %d-%d to be valid, got %v", tc.team1, tc.team2, err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v for %d-%d, got %v", tc.targetErr, tc.team1, tc.team2, err)
			}
		})
	}
}
