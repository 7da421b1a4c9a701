package match

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeScore   = errors.New("scores cannot be negative")
	ErrTiedScore       = errors.New("scores cannot be tied")
	ErrWinBelowTarget  = errors.New("winning score below target")
	ErrMarginTooSmall  = errors.New("winning margin too small")
	ErrDeuceMarginOver = errors.New("deuce games must be won by exactly two")
)

const (
	winTarget      = 15
	winMarginMin   = 2
	deuceThreshold = 13
)

// ValidateScore applies the sport's score rule: no ties, winner reaches at
// least 15, wins by at least 2, and when the loser reaches 13 or more the
// margin must be exactly 2.
func ValidateScore(team1, team2 int) error {
	if team1 < 0 || team2 < 0 {
		return fmt.Errorf("%w: got %d-%d", ErrNegativeScore, team1, team2)
	}
	if team1 == team2 {
		return fmt.Errorf("%w: got %d-%d", ErrTiedScore, team1, team2)
	}

	win, lose := team1, team2
	if team2 > team1 {
		win, lose = team2, team1
	}

	if win < winTarget {
		return fmt.Errorf("%w: winner must reach %d, got %d", ErrWinBelowTarget, winTarget, win)
	}
	margin := win - lose
	if margin < winMarginMin {
		return fmt.Errorf("%w: need %d, got %d", ErrMarginTooSmall, winMarginMin, margin)
	}
	if lose >= deuceThreshold && margin != winMarginMin {
		return fmt.Errorf("%w: got %d-%d", ErrDeuceMarginOver, win, lose)
	}

	return nil
}
