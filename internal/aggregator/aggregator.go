package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/pable/go-cs-matchlog/internal/logging"
	"github.com/pable/go-cs-matchlog/internal/model"
)

// Aggregate computes the match document from the rounds of a RawMatch.
func Aggregate(raw *model.RawMatch) (*model.MatchData, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil RawMatch")
	}

	a := &aggregation{
		startingCT: raw.StartingCT,
		startingT:  raw.StartingT,
		teams: [2]model.TeamStats{
			{Name: raw.StartingCT},
			{Name: raw.StartingT},
		},
		players: newRoster(),
	}

	rounds := make([]model.RoundData, 0, len(raw.Rounds))
	for _, r := range raw.Rounds {
		rounds = append(rounds, a.round(r))
	}

	players := a.players.finalize(len(raw.Rounds))
	logging.Logger().Debugf("aggregated %d rounds, %d players, final score %d:%d",
		len(rounds), len(players), a.teams[0].FinalScore, a.teams[1].FinalScore)

	return &model.MatchData{
		Map:      raw.MapName,
		Date:     formatDate(raw.MatchDate),
		Duration: matchDuration(raw.Rounds),
		Teams:    a.teams,
		Rounds:   rounds,
		Players:  players,
	}, nil
}

// aggregation is the match-level state carried from one round to the next.
type aggregation struct {
	startingCT, startingT string

	teams   [2]model.TeamStats
	players *roster
	score   model.Score
}

func (a *aggregation) round(r model.Round) model.RoundData {
	n := r.Number
	ctTeam, tTeam := TeamsForRound(n, a.startingCT, a.startingT)
	teamOf := func(s model.Side) string {
		if s == model.SideCT {
			return ctTeam
		}
		return tTeam
	}

	// ---- Pass 1: round win, team counters and running score. ----

	team := &a.teams[winnerIndex(r.Winner, n)]
	team.FinalScore++
	if IsFirstHalf(n) {
		team.FirstHalfScore++
	} else {
		team.SecondHalfScore++
	}
	if r.Winner == model.SideCT {
		team.CTRoundsWon++
		a.score.CT++
	} else {
		team.TRoundsWon++
		a.score.T++
	}
	switch r.WinReason {
	case model.WinElimination:
		team.RoundWinTypes.Elimination++
	case model.WinBombDefused:
		team.RoundWinTypes.BombDefused++
	case model.WinBombExploded:
		team.RoundWinTypes.BombExploded++
	default:
		team.RoundWinTypes.Timeout++
	}

	// ---- Pass 2: cross-side damage. Friendly and self damage are not counted. ----

	roundDamage := make(map[string]int)
	var damageOrder []string
	for _, d := range r.Damage {
		if !d.CrossSide() {
			continue
		}
		attacker := a.players.get(d.Attacker, teamOf(d.AttackerSide))
		if _, ok := roundDamage[d.Attacker]; !ok {
			damageOrder = append(damageOrder, d.Attacker)
		}
		roundDamage[d.Attacker] += d.Damage
		attacker.totalDamageDealt += d.Damage
		switch d.HitGroup {
		case "left leg":
			attacker.leftLegDamage += d.Damage
		case "right leg":
			attacker.rightLegDamage += d.Damage
		}
	}

	// ---- Pass 3: kills, opening duel, deaths. ----

	roundKills := make(map[string]int)
	dead := make(map[string]bool)
	opened := false
	feed := make([]model.KillFeedEntry, 0, len(r.Kills))
	for _, k := range r.Kills {
		killer := a.players.get(k.Killer, teamOf(k.KillerSide))
		victim := a.players.get(k.Victim, teamOf(k.VictimSide))

		if k.CrossSide() {
			if !opened {
				opened = true
				killer.openingKills++
				victim.openingDeaths++
			}
			roundKills[k.Killer]++
			killer.kills++
			killer.half(n).kills++
			killer.side(k.KillerSide).kills++
			if k.Headshot {
				killer.headshots++
				killer.half(n).headshots++
				killer.side(k.KillerSide).headshots++
			}
		}

		// Team kills still kill.
		dead[k.Victim] = true
		victim.deaths++
		victim.half(n).deaths++
		victim.side(k.VictimSide).deaths++

		feed = append(feed, model.KillFeedEntry{
			Timestamp:  formatTimestamp(k.Time),
			Killer:     k.Killer,
			KillerTeam: teamOf(k.KillerSide),
			Victim:     k.Victim,
			VictimTeam: teamOf(k.VictimSide),
			Weapon:     k.Weapon,
			Headshot:   k.Headshot,
		})
	}

	// ---- Pass 4: assists. Assisters never seen in a kill or damage event are skipped. ----

	for _, as := range r.Assists {
		if p, ok := a.players.lookup(as.Assister); ok {
			p.assists++
		}
	}

	// ---- Pass 5: damage into half and side buckets. ----

	for _, name := range damageOrder {
		p, _ := a.players.lookup(name)
		dmg := roundDamage[name]
		p.damage += dmg
		p.half(n).damage += dmg
		p.side(SideOf(p.team, n, a.startingCT)).damage += dmg
	}

	// ---- Pass 6: clutch. ----

	if name, side, ok := findClutch(r.Kills); ok {
		p := a.players.get(name, teamOf(side))
		p.clutchesAttempted++
		if side == r.Winner {
			p.clutchesWon++
		}
	}

	// ---- Pass 7: flashes. ----

	flashes := linkFlashes(r, ctTeam, tTeam, a.players)

	// ---- Pass 8: chat transcript. ----

	chat := make([]model.ChatMessage, 0, len(r.Chat))
	for _, c := range r.Chat {
		chat = append(chat, model.ChatMessage{
			Timestamp:    formatTimestamp(c.Time),
			RelativeTime: relativeClock(c.Time, r.Start),
			Player:       c.Player,
			Team:         teamOf(c.Side),
			Side:         c.Side,
			Message:      c.Message,
			IsTeamChat:   c.TeamChat,
			IsFreezeTime: c.FreezeTime,
		})
	}

	// ---- Pass 9: per-round player list and multi-kill counts. ----

	var participants []string
	seen := make(map[string]bool)
	join := func(name string, side model.Side) {
		if seen[name] {
			return
		}
		seen[name] = true
		a.players.get(name, teamOf(side))
		participants = append(participants, name)
	}
	for _, k := range r.Kills {
		join(k.Killer, k.KillerSide)
		join(k.Victim, k.VictimSide)
	}
	for _, d := range r.Damage {
		join(d.Attacker, d.AttackerSide)
		join(d.Victim, d.VictimSide)
	}

	playerStats := make([]model.RoundPlayerStats, 0, len(participants))
	for _, name := range participants {
		p, _ := a.players.lookup(name)
		if k := roundKills[name]; k > 0 {
			p.roundKills = append(p.roundKills, k)
		}
		deaths := 0
		if dead[name] {
			deaths = 1
		}
		playerStats = append(playerStats, model.RoundPlayerStats{
			Name:     name,
			Team:     p.team,
			Side:     SideOf(p.team, n, a.startingCT),
			Kills:    roundKills[name],
			Deaths:   deaths,
			Damage:   roundDamage[name],
			Survived: !dead[name],
		})
	}
	sort.SliceStable(playerStats, func(i, j int) bool {
		return playerStats[i].Kills > playerStats[j].Kills
	})

	return model.RoundData{
		Number:      n,
		Winner:      teamOf(r.Winner),
		WinnerSide:  r.Winner,
		WinReason:   r.WinReason,
		Duration:    int(r.End.Sub(r.Start) / time.Second),
		Score:       a.score,
		PlayerStats: playerStats,
		Kills:       feed,
		Chat:        chat,
		Flashes:     flashes,
	}
}
