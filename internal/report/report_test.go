package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-cs-matchlog/internal/model"
)

func TestPrintMatchHeader(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchHeader(&buf, model.MatchSummary{
		Hash: "0123456789abcdef", MapName: "de_nuke", MatchDate: "24/10/2023",
		CTTeam: "Vitality", TTeam: "NaVi", CTTeamScore: 16, TTeamScore: 9, Rounds: 25, Duration: "41:10",
	}, "1:38")

	out := buf.String()
	for _, want := range []string{"de_nuke", "24/10/2023", "Vitality", "NaVi", "16 – 9", "avg 1:38", "0123456789ab"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abc") {
		t.Error("hash should be shortened to 12 characters")
	}
}

func TestPrintScoreboard(t *testing.T) {
	var buf bytes.Buffer
	PrintScoreboard(&buf, []model.PlayerMatchRow{
		{Name: "Alice", Team: "Vitality", Kills: 20, Deaths: 15, ADR: 88.4, HSPercent: 45, ClutchesWon: 1, ClutchesAttempted: 3},
		{Name: "Bob", Team: "NaVi", Kills: 10, Deaths: 18},
	}, "Bob")

	out := buf.String()
	for _, want := range []string{"Alice", "+5", "88.4", "45%", "1/3", "-8"} {
		if !strings.Contains(out, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, ">") {
		t.Error("focused player should be marked")
	}
}

func TestPrintSideTable(t *testing.T) {
	var buf bytes.Buffer
	PrintSideTable(&buf, []model.PlayerStats{
		{Name: "Alice", Kills: 21, Deaths: 14, OpeningKills: 3, OpeningDeaths: 1,
			FirstHalf: model.BucketStats{Kills: 12, Deaths: 6, ADR: 91.2},
			MultiKillRounds: model.MultiKillRounds{TwoK: 4, Ace: 1}},
		{Name: "Bob", Kills: 4, Deaths: 0},
	}, "")

	out := buf.String()
	for _, want := range []string{"1.50", "+7", "12-6", "91.2", "75%", "4.00", "+4"} {
		if !strings.Contains(out, want) {
			t.Errorf("side table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPlayerRounds(t *testing.T) {
	var buf bytes.Buffer
	PrintPlayerRounds(&buf, []model.RoundData{
		{Number: 1, Winner: "Vitality", WinReason: model.WinElimination, PlayerStats: []model.RoundPlayerStats{
			{Name: "Alice", Side: model.SideCT, Kills: 3, Damage: 287, Survived: true},
		}},
		{Number: 2, Winner: "NaVi", WinReason: model.WinTimeout},
	}, "Alice")

	out := buf.String()
	if !strings.Contains(out, "287") || !strings.Contains(out, "yes") || !strings.Contains(out, "timeout") {
		t.Errorf("unexpected drill-down:\n%s", out)
	}
}

func TestPrintChat(t *testing.T) {
	var buf bytes.Buffer
	PrintChat(&buf, []model.RoundData{
		{Number: 1},
		{Number: 2, Chat: []model.ChatMessage{
			{RelativeTime: "-0:05", Player: "Alice", Side: model.SideCT, Message: "eco", IsTeamChat: true},
		}},
	})

	out := buf.String()
	if strings.Contains(out, "Round 1") {
		t.Error("rounds without chat should be skipped")
	}
	if !strings.Contains(out, "Round 2") || !strings.Contains(out, "(team): eco") || !strings.Contains(out, "-0:05") {
		t.Errorf("unexpected transcript:\n%s", out)
	}
}
