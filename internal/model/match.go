package model

// ---- Match document ----

// MatchData is the single document produced for a match log.
type MatchData struct {
	Map      string        `json:"map"`
	Date     string        `json:"date"`     // DD/MM/YYYY
	Duration string        `json:"duration"` // M:SS
	Teams    [2]TeamStats  `json:"teams"`    // starting-CT team first
	Rounds   []RoundData   `json:"rounds"`
	Players  []PlayerStats `json:"players"` // kills descending
}

type RoundWinTypes struct {
	Elimination  int `json:"elimination"`
	BombDefused  int `json:"bombDefused"`
	BombExploded int `json:"bombExploded"`
	Timeout      int `json:"timeout"`
}

type TeamStats struct {
	Name            string        `json:"name"`
	FinalScore      int           `json:"finalScore"`
	FirstHalfScore  int           `json:"firstHalfScore"`
	SecondHalfScore int           `json:"secondHalfScore"`
	RoundWinTypes   RoundWinTypes `json:"roundWinTypes"`
	CTRoundsWon     int           `json:"ctRoundsWon"`
	TRoundsWon      int           `json:"tRoundsWon"`
}

type Score struct {
	CT int `json:"ct"`
	T  int `json:"t"`
}

type RoundData struct {
	Number      int                `json:"number"`
	Winner      string             `json:"winner"`
	WinnerSide  Side               `json:"winnerSide"`
	WinReason   WinReason          `json:"winReason"`
	Duration    int                `json:"duration"` // seconds
	Score       Score              `json:"score"`
	PlayerStats []RoundPlayerStats `json:"playerStats"`
	Kills       []KillFeedEntry    `json:"kills"`
	Chat        []ChatMessage      `json:"chat"`
	Flashes     []FlashEntry       `json:"flashes"`
}

type KillFeedEntry struct {
	Timestamp  string `json:"timestamp"`
	Killer     string `json:"killer"`
	KillerTeam string `json:"killerTeam"`
	Victim     string `json:"victim"`
	VictimTeam string `json:"victimTeam"`
	Weapon     string `json:"weapon"`
	Headshot   bool   `json:"headshot"`
}

type FlashEntry struct {
	Timestamp   string        `json:"timestamp"`
	Thrower     string        `json:"thrower"`
	ThrowerTeam string        `json:"throwerTeam"`
	ThrowerSide FlashSide     `json:"throwerSide"`
	EntIndex    int           `json:"entindex"`
	Blinds      []BlindEffect `json:"blinds"`
}

type BlindEffect struct {
	Victim      string    `json:"victim"`
	VictimSide  FlashSide `json:"victimSide"`
	Duration    float64   `json:"duration"`
	IsSelf      bool      `json:"isSelf"`
	IsTeammate  bool      `json:"isTeammate"`
	IsEnemy     bool      `json:"isEnemy"`
	IsSpectator bool      `json:"isSpectator"`
}

type ChatMessage struct {
	Timestamp    string `json:"timestamp"`
	RelativeTime string `json:"relativeTime"` // [-]M:SS from round start
	Player       string `json:"player"`
	Team         string `json:"team"`
	Side         Side   `json:"side"`
	Message      string `json:"message"`
	IsTeamChat   bool   `json:"isTeamChat"`
	IsFreezeTime bool   `json:"isFreezeTime"`
}

type RoundPlayerStats struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Side     Side   `json:"side"`
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	Assists  int    `json:"assists"`
	Damage   int    `json:"damage"`
	Survived bool   `json:"survived"`
}

// BucketStats is a player's line for one half or one side.
type BucketStats struct {
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	ADR       float64 `json:"adr"`
	HSPercent float64 `json:"hsPercent"`
}

type SpectatorBlind struct {
	Name      string  `json:"name"`
	TotalTime float64 `json:"totalTime"`
}

type FlashStats struct {
	Thrown            int              `json:"thrown"`
	EnemiesBlinded    int              `json:"enemiesBlinded"`
	EnemyBlindTime    float64          `json:"enemyBlindTime"`
	TeammatesBlinded  int              `json:"teammatesBlinded"`
	TeammateBlindTime float64          `json:"teammateBlindTime"`
	SelfFlashes       int              `json:"selfFlashes"`
	SelfBlindTime     float64          `json:"selfBlindTime"`
	SpectatorsFlashed int              `json:"spectatorsFlashed"`
	SpectatorBlinds   []SpectatorBlind `json:"spectatorBlinds"`
}

type MultiKillRounds struct {
	TwoK   int `json:"twoK"`
	ThreeK int `json:"threeK"`
	FourK  int `json:"fourK"`
	Ace    int `json:"ace"`
}

type PlayerStats struct {
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Assists   int     `json:"assists"`
	ADR       float64 `json:"adr"`
	HSPercent float64 `json:"hsPercent"`

	FirstHalf  BucketStats `json:"firstHalf"`
	SecondHalf BucketStats `json:"secondHalf"`
	CTSide     BucketStats `json:"ctSide"`
	TSide      BucketStats `json:"tSide"`

	OpeningKills      int `json:"openingKills"`
	OpeningDeaths     int `json:"openingDeaths"`
	ClutchesWon       int `json:"clutchesWon"`
	ClutchesAttempted int `json:"clutchesAttempted"`

	FlashStats FlashStats `json:"flashStats"`

	LegShotPercent   float64 `json:"legShotPercent"`
	LeftLegDamage    int     `json:"leftLegDamage"`
	RightLegDamage   int     `json:"rightLegDamage"`
	TotalDamageDealt int     `json:"totalDamageDealt"`

	MultiKillRounds MultiKillRounds `json:"multiKillRounds"`
}

func (s *PlayerStats) KDRatio() float64 {
	if s.Deaths == 0 {
		return float64(s.Kills)
	}
	return float64(s.Kills) / float64(s.Deaths)
}

// KDDiff is kills minus deaths, the "+/-" column of a scoreboard.
func (s *PlayerStats) KDDiff() int {
	return s.Kills - s.Deaths
}

// OpeningDuelWinPct is the share of opening duels the player won.
func (s *PlayerStats) OpeningDuelWinPct() float64 {
	total := s.OpeningKills + s.OpeningDeaths
	if total == 0 {
		return 0
	}
	return float64(s.OpeningKills) / float64(total) * 100
}

// ---- Storage summaries ----

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	Hash        string
	MatchID     string
	MapName     string
	MatchDate   string
	Duration    string
	CTTeam      string // starting CT team
	TTeam       string // starting T team
	CTTeamScore int
	TTeamScore  int
	Rounds      int
}

// PlayerMatchRow is the flattened per-player row kept for SQL querying.
type PlayerMatchRow struct {
	MatchHash         string
	Name              string
	Team              string
	Kills             int
	Deaths            int
	Assists           int
	ADR               float64
	HSPercent         float64
	OpeningKills      int
	OpeningDeaths     int
	ClutchesWon       int
	ClutchesAttempted int
	FlashesThrown     int
	EnemiesBlinded    int
	TotalDamage       int
}

// RoundResult is the flattened per-round row kept for SQL querying.
type RoundResult struct {
	MatchHash  string
	Number     int
	Winner     string
	WinnerSide Side
	WinReason  WinReason
	Duration   int
	CTScore    int
	TScore     int
}
