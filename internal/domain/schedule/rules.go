package schedule

import "sort"

// Entry is one waiting partnership as seen by the fairness ranking.
type Entry struct {
	PartnershipID string
	Player1ID     string
	Player2ID     string
	// GamesPlayed counts completed matches for the night, derived from match
	// history.
	GamesPlayed int
	// Effective is the fairness rank actually sorted on: partnerships that
	// have not played yet are clamped to the waiting set's minimum count.
	Effective int
}

// Tiebreak orders entries that share the same effective games-played count.
// The production strategy is randomized for pairing variety; tests inject
// the stable strategy.
type Tiebreak interface {
	Order(tied []Entry) []Entry
}

// Rank orders the waiting set ascending by effective games played. Ties are
// handed to the tiebreak strategy group by group.
func Rank(entries []Entry, tb Tiebreak) []Entry {
	if len(entries) == 0 {
		return nil
	}

	min := entries[0].GamesPlayed
	for _, e := range entries[1:] {
		if e.GamesPlayed < min {
			min = e.GamesPlayed
		}
	}

	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	for i := range ranked {
		ranked[i].Effective = ranked[i].GamesPlayed
		if ranked[i].GamesPlayed == 0 {
			ranked[i].Effective = min
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Effective < ranked[j].Effective
	})

	if tb == nil {
		return ranked
	}

	out := make([]Entry, 0, len(ranked))
	for start := 0; start < len(ranked); {
		end := start + 1
		for end < len(ranked) && ranked[end].Effective == ranked[start].Effective {
			end++
		}
		out = append(out, tb.Order(ranked[start:end])...)
		start = end
	}

	return out
}

// Limit reports which bound stopped the allocator from creating more matches.
type Limit string

const (
	LimitNone         Limit = ""
	LimitPartnerships Limit = "partnerships"
	LimitCourts       Limit = "courts"
)

// PairCount returns how many matches can start given the waiting set size and
// the number of free courts, plus the limiting bound.
func PairCount(waiting, freeCourts int) (int, Limit) {
	pairs := waiting / 2
	if freeCourts < 0 {
		freeCourts = 0
	}

	switch {
	case pairs < freeCourts:
		return pairs, LimitPartnerships
	case freeCourts < pairs:
		return freeCourts, LimitCourts
	}

	return pairs, LimitNone
}
