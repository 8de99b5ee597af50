package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pable/go-cs-matchlog/internal/model"
)

// player matches a quoted player token: "Name<userid><steamid><SIDE>".
const (
	player     = `"(.+?)<\d+><[^>]+><(CT|TERRORIST)>"`
	flashActor = `"(.+?)<\d+><[^>]+><(CT|TERRORIST|Spectator)>"`
)

// Compiled line patterns. All except timestamp are applied to the line body
// that follows the timestamp prefix. Server lines are anchored to the start
// of the body so that chat quoting them is still chat.
var (
	timestampRe  = regexp.MustCompile(`^(?:L )?(\d{2}/\d{2}/\d{4}) - (\d{2}:\d{2}:\d{2}):\s?`)
	matchStartRe = regexp.MustCompile(`^World triggered "Match_Start" on "(.+?)"`)
	roundStartRe = regexp.MustCompile(`^World triggered "Round_Start"`)
	roundEndRe   = regexp.MustCompile(`^World triggered "Round_End"`)
	gameOverRe   = regexp.MustCompile(`^Game Over: competitive \d+ (\w+) score (\d+):(\d+) after (\d+) min`)
	teamPlayRe   = regexp.MustCompile(`^Team playing "(CT|TERRORIST)": (.+)`)
	roundWinRe   = regexp.MustCompile(`^Team "(CT|TERRORIST)" triggered "(SFUI_Notice_\w+)"`)

	killRe       = regexp.MustCompile(player + `.*\[-?\d+ -?\d+ -?\d+\] killed ` + player + `.*with "(\w+)"( \(headshot\))?`)
	damageHitRe  = regexp.MustCompile(player + `.*attacked ` + player + `.*\(damage "(\d+)"\).*\(hitgroup "([^"]+)"\)`)
	damageRe     = regexp.MustCompile(player + `.*attacked ` + player + `.*\(damage "(\d+)"\)`)
	assistRe     = regexp.MustCompile(`"(.+?)<\d+><[^>]+><(?:CT|TERRORIST)>" assisted killing "(.+?)<\d+>`)
	flashThrowRe = regexp.MustCompile(flashActor + ` threw flashbang \[.*\] flashbang entindex (\d+)\)`)
	blindRe      = regexp.MustCompile(flashActor + ` blinded for ([\d.]+) by ` + flashActor + ` from flashbang entindex (\d+)`)
	chatRe       = regexp.MustCompile(player + ` (say|say_team) "(.*)"`)
)

// parseTimestamp turns the log's MM/DD/YYYY and HH:MM:SS fields into a time.
// Log times carry no zone; they are pinned to UTC so output does not depend
// on the machine running the parser.
// splitLine separates a line into its timestamp fields and body. ok is false
// for lines without the timestamp prefix.
func splitLine(line string) (date, clock, body string, ok bool) {
	ts := timestampRe.FindStringSubmatch(line)
	if ts == nil {
		return "", "", "", false
	}
	return ts[1], ts[2], line[len(ts[0]):], true
}

func parseTimestamp(date, clock string) (time.Time, error) {
	return time.ParseInLocation("01/02/2006 15:04:05", date+" "+clock, time.UTC)
}

func parseSide(s string) model.Side {
	if s == "CT" {
		return model.SideCT
	}
	return model.SideT
}

func parseFlashSide(s string) model.FlashSide {
	switch s {
	case "CT":
		return model.FlashCT
	case "TERRORIST":
		return model.FlashT
	default:
		return model.FlashSpectator
	}
}

func parseWinReason(notice string) model.WinReason {
	switch {
	case strings.Contains(notice, "Bomb_Defused"):
		return model.WinBombDefused
	case strings.Contains(notice, "Target_Bombed"):
		return model.WinBombExploded
	case strings.Contains(notice, "CTs_Win"), strings.Contains(notice, "Terrorists_Win"):
		return model.WinElimination
	default:
		return model.WinTimeout
	}
}

// isWorldEntity reports whether a kill victim is map geometry rather than a player.
func isWorldEntity(name string) bool {
	return strings.Contains(name, "func_") || strings.Contains(name, "prop_")
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
