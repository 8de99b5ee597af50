package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-cs-matchlog/internal/model"
)

type outcome int

const (
	consumed outcome = iota // line recognised and applied
	ignored                 // no pattern matched, or the required state was missing
	stop                    // game over: no further lines are read
)

// scanState is everything the extractor knows between two lines.
// round == nil is the NoActiveRound state.
type scanState struct {
	mapName string
	date    string
	ctTeam  string
	tTeam   string
	started bool

	round      *model.Round
	freezeChat []model.ChatEvent
	closed     []model.Round
}

func newScanState() scanState {
	return scanState{closed: []model.Round{}}
}

func (s scanState) teamsKnown() bool {
	return s.started && s.ctTeam != "" && s.tTeam != ""
}

// step applies one log line to s and returns the next state.
func step(s scanState, line string) (scanState, outcome) {
	date, clock, body, ok := splitLine(line)
	if !ok {
		return s, ignored
	}
	at, err := parseTimestamp(date, clock)
	if err != nil {
		return s, ignored
	}
	if s.date == "" {
		s.date = date
	}

	if m := matchStartRe.FindStringSubmatch(body); m != nil {
		s.mapName = m[1]
		s.started = true
		return s, consumed
	}
	if gameOverRe.MatchString(body) {
		return s, stop
	}
	// "MatchStatus: Team playing ..." lines repeat the assignment after side
	// swaps and do not match the anchored pattern; only the initial
	// assignment names the teams.
	if m := teamPlayRe.FindStringSubmatch(body); m != nil && s.started {
		name := strings.TrimSpace(m[2])
		if m[1] == "CT" {
			if s.ctTeam == "" {
				s.ctTeam = name
			}
		} else if s.tTeam == "" {
			s.tTeam = name
		}
		return s, consumed
	}
	if roundStartRe.MatchString(body) {
		if !s.teamsKnown() {
			return s, ignored
		}
		return s.openRound(at), consumed
	}
	if roundEndRe.MatchString(body) {
		if s.round == nil {
			return s, ignored
		}
		return s.closeRound(at), consumed
	}
	if m := chatRe.FindStringSubmatch(body); m != nil {
		if !s.teamsKnown() {
			return s, ignored
		}
		return s.addChat(at, m), consumed
	}

	if s.round == nil {
		return s, ignored
	}
	return s.roundEvent(at, body)
}

// openRound moves to RoundActive. A round that is still open when the next
// one starts never saw its end marker and is dropped.
func (s scanState) openRound(at time.Time) scanState {
	s.round = &model.Round{
		Number:    len(s.closed) + 1,
		Start:     at,
		End:       at,
		Winner:    model.SideCT,
		WinReason: model.WinElimination,
		Kills:     []model.KillEvent{},
		Damage:    []model.DamageEvent{},
		Assists:   []model.AssistEvent{},
		Flashes:   []model.FlashThrowEvent{},
		Blinds:    []model.BlindEvent{},
		Chat:      append([]model.ChatEvent{}, s.freezeChat...),
		CTTeam:    s.ctTeam,
		TTeam:     s.tTeam,
	}
	s.freezeChat = nil
	return s
}

func (s scanState) closeRound(at time.Time) scanState {
	s.round.End = at
	s.closed = append(s.closed, *s.round)
	s.round = nil
	return s
}

func (s scanState) addChat(at time.Time, m []string) scanState {
	msg := model.ChatEvent{
		Time:       at,
		Player:     m[1],
		Side:       parseSide(m[2]),
		Message:    m[4],
		TeamChat:   m[3] == "say_team",
		FreezeTime: s.round == nil,
	}
	if s.round != nil {
		s.round.Chat = append(s.round.Chat, msg)
	} else {
		s.freezeChat = append(s.freezeChat, msg)
	}
	return s
}

// roundEvent records an in-round event on the active round. Patterns are
// tried in a fixed order and the first match wins.
func (s scanState) roundEvent(at time.Time, body string) (scanState, outcome) {
	r := s.round

	if m := killRe.FindStringSubmatch(body); m != nil {
		if isWorldEntity(m[3]) {
			return s, ignored
		}
		r.Kills = append(r.Kills, model.KillEvent{
			Time:       at,
			Killer:     m[1],
			KillerSide: parseSide(m[2]),
			Victim:     m[3],
			VictimSide: parseSide(m[4]),
			Weapon:     m[5],
			Headshot:   m[6] != "",
		})
		return s, consumed
	}

	if m := damageHitRe.FindStringSubmatch(body); m != nil {
		return s.addDamage(at, m[1:6], m[6])
	}
	if m := damageRe.FindStringSubmatch(body); m != nil {
		return s.addDamage(at, m[1:6], "")
	}

	if m := assistRe.FindStringSubmatch(body); m != nil {
		r.Assists = append(r.Assists, model.AssistEvent{Time: at, Assister: m[1], Victim: m[2]})
		return s, consumed
	}

	if m := flashThrowRe.FindStringSubmatch(body); m != nil {
		ent, ok := atoi(m[3])
		if !ok {
			return s, ignored
		}
		r.Flashes = append(r.Flashes, model.FlashThrowEvent{
			Time:        at,
			Thrower:     m[1],
			ThrowerSide: parseFlashSide(m[2]),
			EntIndex:    ent,
		})
		return s, consumed
	}

	if m := blindRe.FindStringSubmatch(body); m != nil {
		dur, err := strconv.ParseFloat(m[3], 64)
		ent, ok := atoi(m[6])
		if err != nil || !ok {
			return s, ignored
		}
		r.Blinds = append(r.Blinds, model.BlindEvent{
			Time:        at,
			Victim:      m[1],
			VictimSide:  parseFlashSide(m[2]),
			Thrower:     m[4],
			ThrowerSide: parseFlashSide(m[5]),
			Duration:    dur,
			EntIndex:    ent,
		})
		return s, consumed
	}

	if m := roundWinRe.FindStringSubmatch(body); m != nil {
		r.Winner = parseSide(m[1])
		r.WinReason = parseWinReason(m[2])
		return s, consumed
	}

	return s, ignored
}

// addDamage appends a damage event; f holds attacker, attacker side, victim,
// victim side and amount.
func (s scanState) addDamage(at time.Time, f []string, hitGroup string) (scanState, outcome) {
	amount, ok := atoi(f[4])
	if !ok {
		return s, ignored
	}
	s.round.Damage = append(s.round.Damage, model.DamageEvent{
		Time:         at,
		Attacker:     f[0],
		AttackerSide: parseSide(f[1]),
		Victim:       f[2],
		VictimSide:   parseSide(f[3]),
		Damage:       amount,
		HitGroup:     hitGroup,
	})
	return s, consumed
}
