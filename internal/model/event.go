package model

import "time"

// ---- Raw events emitted by the parser ----

// KillEvent is one player killing another, world entities already dropped.
type KillEvent struct {
	Time                   time.Time
	Killer, Victim         string
	KillerSide, VictimSide Side
	Weapon                 string
	Headshot               bool
}

// CrossSide reports whether killer and victim were on opposite sides.
// Only cross-side kills are credited to the killer.
func (k KillEvent) CrossSide() bool {
	return k.KillerSide != k.VictimSide
}

// DamageEvent is one hit from an "attacked" line.
type DamageEvent struct {
	Time                     time.Time
	Attacker, Victim         string
	AttackerSide, VictimSide Side
	Damage                   int
	HitGroup                 string // "head", "chest", "left leg", ...; empty when the line carried none
}

func (d DamageEvent) CrossSide() bool {
	return d.AttackerSide != d.VictimSide
}

// AssistEvent credits a player with an assist on a kill.
type AssistEvent struct {
	Time     time.Time
	Assister string
	Victim   string
}

// FlashThrowEvent is a flashbang detonation attributed to its thrower.
type FlashThrowEvent struct {
	Time        time.Time
	Thrower     string
	ThrowerSide FlashSide
	EntIndex    int // correlates the throw with its BlindEvents
}

// BlindEvent is one person blinded by a flashbang.
type BlindEvent struct {
	Time        time.Time
	Victim      string
	VictimSide  FlashSide
	Thrower     string
	ThrowerSide FlashSide
	Duration    float64 // seconds
	EntIndex    int
}

// ChatEvent is a say or say_team line.
type ChatEvent struct {
	Time       time.Time
	Player     string
	Side       Side
	Message    string
	TeamChat   bool
	FreezeTime bool // sent while no round was active
}

// Round is one closed round as extracted from the log.
type Round struct {
	Number     int
	Start, End time.Time
	Winner     Side
	WinReason  WinReason

	Kills   []KillEvent
	Damage  []DamageEvent
	Assists []AssistEvent
	Flashes []FlashThrowEvent
	Blinds  []BlindEvent
	Chat    []ChatEvent

	// Team names bound to each side when the round opened.
	CTTeam, TTeam string
}

// ScanStats summarises a single extraction pass.
type ScanStats struct {
	Lines    int // lines scanned from the last match start onward
	Ignored  int // lines that matched nothing or lacked the required state
	Restarts int // earlier match-start markers that were skipped
}

// RawMatch is the extractor's output for one log: the closed rounds after
// the last match start plus the match header fields.
type RawMatch struct {
	LogHash    string
	MapName    string
	MatchDate  string // MM/DD/YYYY as written in the log
	StartingCT string
	StartingT  string
	Rounds     []Round
	Scan       ScanStats
}
