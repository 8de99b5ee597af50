package aggregator

import "github.com/pable/go-cs-matchlog/internal/model"

// findClutch replays the round's cross-side kills and returns the first
// player left alone on their side while the other side still has someone
// alive. The alive sets start from everyone who took part in any kill.
func findClutch(kills []model.KillEvent) (name string, side model.Side, ok bool) {
	alive := [2]map[string]bool{{}, {}}
	for _, k := range kills {
		alive[k.KillerSide][k.Killer] = true
		alive[k.VictimSide][k.Victim] = true
	}

	for _, k := range kills {
		if !k.CrossSide() {
			continue
		}
		delete(alive[k.VictimSide], k.Victim)
		own, enemy := alive[k.VictimSide], alive[k.VictimSide.Opposite()]
		if len(own) == 1 && len(enemy) > 0 {
			for last := range own {
				return last, k.VictimSide, true
			}
		}
	}
	return "", model.SideCT, false
}
