package aggregator

import "github.com/pable/go-cs-matchlog/internal/model"

// HalfLength is the number of rounds each team plays on its starting side.
// Rounds after it are played with sides swapped. Overtime is not modelled.
const HalfLength = 15

// IsFirstHalf reports whether round number n is played on the starting sides.
func IsFirstHalf(n int) bool {
	return n <= HalfLength
}

// TeamsForRound returns the team names playing CT and T in round n.
func TeamsForRound(n int, startingCT, startingT string) (ct, t string) {
	if IsFirstHalf(n) {
		return startingCT, startingT
	}
	return startingT, startingCT
}

// SideOf returns the side team plays in round n. Any team that is not the
// starting-CT team is treated as the starting-T team.
func SideOf(team string, n int, startingCT string) model.Side {
	side := model.SideT
	if team == startingCT {
		side = model.SideCT
	}
	if !IsFirstHalf(n) {
		side = side.Opposite()
	}
	return side
}

// winnerIndex maps a round winner onto MatchData.Teams, where index 0 is the
// starting-CT team.
func winnerIndex(winner model.Side, n int) int {
	if (winner == model.SideCT) == IsFirstHalf(n) {
		return 0
	}
	return 1
}
