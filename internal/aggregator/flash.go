package aggregator

import "github.com/pable/go-cs-matchlog/internal/model"

// classifyBlind tags a blind relative to the flash's thrower.
func classifyBlind(thrower string, throwerSide model.FlashSide, b model.BlindEvent) model.BlindEffect {
	isSelf := b.Victim == thrower
	isSpectator := b.VictimSide == model.FlashSpectator
	isTeammate := !isSelf && !isSpectator && b.VictimSide == throwerSide
	return model.BlindEffect{
		Victim:      b.Victim,
		VictimSide:  b.VictimSide,
		Duration:    b.Duration,
		IsSelf:      isSelf,
		IsTeammate:  isTeammate,
		IsEnemy:     !isSelf && !isSpectator && !isTeammate,
		IsSpectator: isSpectator,
	}
}

// linkFlashes joins every throw in the round with the blinds that carry its
// entity index, and credits the thrower. Spectator throws are listed but
// credited to nobody.
func linkFlashes(r model.Round, ctTeam, tTeam string, players *roster) []model.FlashEntry {
	blindsByEnt := make(map[int][]model.BlindEvent)
	for _, b := range r.Blinds {
		blindsByEnt[b.EntIndex] = append(blindsByEnt[b.EntIndex], b)
	}

	entries := make([]model.FlashEntry, 0, len(r.Flashes))
	for _, f := range r.Flashes {
		throwerTeam := "Spectator"
		switch f.ThrowerSide {
		case model.FlashCT:
			throwerTeam = ctTeam
		case model.FlashT:
			throwerTeam = tTeam
		}

		effects := make([]model.BlindEffect, 0, len(blindsByEnt[f.EntIndex]))
		for _, b := range blindsByEnt[f.EntIndex] {
			effects = append(effects, classifyBlind(f.Thrower, f.ThrowerSide, b))
		}

		entries = append(entries, model.FlashEntry{
			Timestamp:   formatTimestamp(f.Time),
			Thrower:     f.Thrower,
			ThrowerTeam: throwerTeam,
			ThrowerSide: f.ThrowerSide,
			EntIndex:    f.EntIndex,
			Blinds:      effects,
		})

		if f.ThrowerSide == model.FlashSpectator {
			continue
		}
		fs := &players.get(f.Thrower, throwerTeam).flash
		fs.thrown++
		for _, e := range effects {
			switch {
			case e.IsEnemy:
				fs.enemiesBlinded++
				fs.enemyBlindTime += e.Duration
			case e.IsTeammate:
				fs.teammatesBlinded++
				fs.teammateBlindTime += e.Duration
			case e.IsSelf:
				fs.selfFlashes++
				fs.selfBlindTime += e.Duration
			case e.IsSpectator:
				fs.spectatorsFlashed++
				fs.addSpectator(e.Victim, e.Duration)
			}
		}
	}
	return entries
}
