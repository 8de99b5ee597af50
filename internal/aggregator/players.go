package aggregator

import (
	"sort"

	"github.com/pable/go-cs-matchlog/internal/model"
)

// bucket holds raw counters for one half or one side.
type bucket struct {
	kills, deaths, damage, headshots int
}

type flashAccum struct {
	thrown            int
	enemiesBlinded    int
	enemyBlindTime    float64
	teammatesBlinded  int
	teammateBlindTime float64
	selfFlashes       int
	selfBlindTime     float64
	spectatorsFlashed int

	// per-spectator totals, merged by name across the match
	spectatorOrder []string
	spectatorTime  map[string]float64
}

func (f *flashAccum) addSpectator(name string, d float64) {
	if f.spectatorTime == nil {
		f.spectatorTime = make(map[string]float64)
	}
	if _, ok := f.spectatorTime[name]; !ok {
		f.spectatorOrder = append(f.spectatorOrder, name)
	}
	f.spectatorTime[name] += d
}

// playerAccum is the running counter set for one player.
type playerAccum struct {
	name string
	team string // team at first appearance

	kills, deaths, assists, damage, headshots int

	firstHalf, secondHalf bucket
	ct, t                 bucket

	openingKills, openingDeaths    int
	clutchesWon, clutchesAttempted int
	leftLegDamage, rightLegDamage  int
	totalDamageDealt               int

	flash flashAccum

	// cross-side kill count of every round in which the player killed
	roundKills []int
}

func (p *playerAccum) half(n int) *bucket {
	if IsFirstHalf(n) {
		return &p.firstHalf
	}
	return &p.secondHalf
}

func (p *playerAccum) side(s model.Side) *bucket {
	if s == model.SideCT {
		return &p.ct
	}
	return &p.t
}

// roster is an arena of player accumulators indexed by name, kept in order
// of first appearance.
type roster struct {
	index   map[string]int
	players []*playerAccum
}

func newRoster() *roster {
	return &roster{index: make(map[string]int)}
}

// get returns the accumulator for name, creating it with team if the player
// has not been seen before. The team of an existing player never changes.
func (r *roster) get(name, team string) *playerAccum {
	if i, ok := r.index[name]; ok {
		return r.players[i]
	}
	p := &playerAccum{name: name, team: team}
	r.index[name] = len(r.players)
	r.players = append(r.players, p)
	return p
}

func (r *roster) lookup(name string) (*playerAccum, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.players[i], true
}

// classifyMultiKills buckets per-round kill counts. Each round counts once.
func classifyMultiKills(counts []int) model.MultiKillRounds {
	var m model.MultiKillRounds
	for _, k := range counts {
		switch {
		case k == 2:
			m.TwoK++
		case k == 3:
			m.ThreeK++
		case k == 4:
			m.FourK++
		case k >= 5:
			m.Ace++
		}
	}
	return m
}

// finalize rolls the roster up into PlayerStats sorted by kills descending.
func (r *roster) finalize(totalRounds int) []model.PlayerStats {
	// Side buckets use the same fixed-half round counts as the halves.
	firstHalfRounds := min(HalfLength, totalRounds)
	secondHalfRounds := max(0, totalRounds-HalfLength)

	out := make([]model.PlayerStats, 0, len(r.players))
	for _, p := range r.players {
		spectators := make([]model.SpectatorBlind, 0, len(p.flash.spectatorOrder))
		for _, name := range p.flash.spectatorOrder {
			spectators = append(spectators, model.SpectatorBlind{
				Name:      name,
				TotalTime: round2(p.flash.spectatorTime[name]),
			})
		}

		out = append(out, model.PlayerStats{
			Name:       p.name,
			Team:       p.team,
			Kills:      p.kills,
			Deaths:     p.deaths,
			Assists:    p.assists,
			ADR:        perRound(p.damage, totalRounds),
			HSPercent:  percent(p.headshots, p.kills),
			FirstHalf:  p.firstHalf.stats(firstHalfRounds),
			SecondHalf: p.secondHalf.stats(secondHalfRounds),
			CTSide:     p.ct.stats(firstHalfRounds),
			TSide:      p.t.stats(secondHalfRounds),

			OpeningKills:      p.openingKills,
			OpeningDeaths:     p.openingDeaths,
			ClutchesWon:       p.clutchesWon,
			ClutchesAttempted: p.clutchesAttempted,

			FlashStats: model.FlashStats{
				Thrown:            p.flash.thrown,
				EnemiesBlinded:    p.flash.enemiesBlinded,
				EnemyBlindTime:    round2(p.flash.enemyBlindTime),
				TeammatesBlinded:  p.flash.teammatesBlinded,
				TeammateBlindTime: round2(p.flash.teammateBlindTime),
				SelfFlashes:       p.flash.selfFlashes,
				SelfBlindTime:     round2(p.flash.selfBlindTime),
				SpectatorsFlashed: p.flash.spectatorsFlashed,
				SpectatorBlinds:   spectators,
			},

			LegShotPercent:   percent(p.leftLegDamage+p.rightLegDamage, p.totalDamageDealt),
			LeftLegDamage:    p.leftLegDamage,
			RightLegDamage:   p.rightLegDamage,
			TotalDamageDealt: p.totalDamageDealt,

			MultiKillRounds: classifyMultiKills(p.roundKills),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kills > out[j].Kills
	})
	return out
}

func (b bucket) stats(rounds int) model.BucketStats {
	return model.BucketStats{
		Kills:     b.kills,
		Deaths:    b.deaths,
		ADR:       perRound(b.damage, rounds),
		HSPercent: percent(b.headshots, b.kills),
	}
}
