package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pable/go-cs-matchlog/internal/model"
)

const logDate = "10/24/2023"

// at builds a timestamped log line.
func at(clock, body string) string {
	return "L " + logDate + " - " + clock + ": " + body
}

const (
	alice = `"Alice<1><STEAM_1:0:1><CT>"`
	bob   = `"Bob<2><STEAM_1:0:2><TERRORIST>"`
	carl  = `"Carl<3><STEAM_1:0:3><TERRORIST>"`
	dana  = `"Dana<4><STEAM_1:0:4><CT>"`
)

// preamble starts a match on de_nuke with Vitality on CT and NaVi on T.
func preamble() []string {
	return []string{
		at("20:00:00", `World triggered "Match_Start" on "de_nuke"`),
		at("20:00:00", `Team playing "CT": Vitality`),
		at("20:00:00", `Team playing "TERRORIST": NaVi`),
	}
}

func parseLines(t *testing.T, lines ...string) *model.RawMatch {
	t.Helper()
	raw, err := Parse([]byte(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return raw
}

func TestParse_SingleRound(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:10", alice+` [0 0 0] killed `+bob+` [10 10 0] with "ak47" (headshot)`),
		at("20:01:11", `Team "CT" triggered "SFUI_Notice_CTs_Win" (CT "1") (T "0")`),
		at("20:01:12", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)

	if raw.MapName != "de_nuke" {
		t.Errorf("MapName: want de_nuke, got %q", raw.MapName)
	}
	if raw.MatchDate != logDate {
		t.Errorf("MatchDate: want %s, got %q", logDate, raw.MatchDate)
	}
	if raw.StartingCT != "Vitality" || raw.StartingT != "NaVi" {
		t.Errorf("teams: got CT=%q T=%q", raw.StartingCT, raw.StartingT)
	}
	if len(raw.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(raw.Rounds))
	}
	r := raw.Rounds[0]
	if r.Number != 1 || r.Winner != model.SideCT || r.WinReason != model.WinElimination {
		t.Errorf("round: number=%d winner=%v reason=%s", r.Number, r.Winner, r.WinReason)
	}
	if len(r.Kills) != 1 {
		t.Fatalf("expected 1 kill, got %d", len(r.Kills))
	}
	k := r.Kills[0]
	if k.Killer != "Alice" || k.Victim != "Bob" || k.Weapon != "ak47" || !k.Headshot {
		t.Errorf("unexpected kill: %+v", k)
	}
	if k.KillerSide != model.SideCT || k.VictimSide != model.SideT {
		t.Errorf("kill sides: %v -> %v", k.KillerSide, k.VictimSide)
	}
	if got := r.End.Sub(r.Start).Seconds(); got != 12 {
		t.Errorf("round length: want 12s, got %v", got)
	}
	if raw.LogHash == "" || len(raw.LogHash) != 64 {
		t.Errorf("expected sha256 hex log hash, got %q", raw.LogHash)
	}
}

func TestParse_UsesLastMatchStart(t *testing.T) {
	lines := []string{
		at("19:00:00", `World triggered "Match_Start" on "de_dust2"`),
		at("19:00:00", `Team playing "CT": Warmup A`),
		at("19:00:00", `Team playing "TERRORIST": Warmup B`),
		at("19:01:00", `World triggered "Round_Start"`),
		at("19:01:30", `World triggered "Round_End"`),
	}
	lines = append(lines, preamble()...)
	lines = append(lines,
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:30", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)

	if raw.MapName != "de_nuke" {
		t.Errorf("MapName: want de_nuke from last start, got %q", raw.MapName)
	}
	if raw.StartingCT != "Vitality" {
		t.Errorf("StartingCT: want Vitality, got %q", raw.StartingCT)
	}
	if len(raw.Rounds) != 1 {
		t.Errorf("expected only the round after the last start, got %d", len(raw.Rounds))
	}
	if raw.Scan.Restarts != 1 {
		t.Errorf("Restarts: want 1, got %d", raw.Scan.Restarts)
	}
}

func TestParse_RoundStartBeforeTeamsIgnored(t *testing.T) {
	raw := parseLines(t,
		at("20:00:00", `World triggered "Match_Start" on "de_nuke"`),
		at("20:00:01", `World triggered "Round_Start"`),
		at("20:00:02", alice+` [0 0 0] killed `+bob+` [1 1 1] with "ak47"`),
		at("20:00:03", `World triggered "Round_End"`),
		at("20:00:04", `Team playing "CT": Vitality`),
		at("20:00:04", `Team playing "TERRORIST": NaVi`),
		at("20:00:05", `World triggered "Round_Start"`),
		at("20:00:06", `World triggered "Round_End"`),
	)
	if len(raw.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(raw.Rounds))
	}
	if raw.Rounds[0].Number != 1 || len(raw.Rounds[0].Kills) != 0 {
		t.Errorf("unexpected round: %+v", raw.Rounds[0])
	}
}

func TestParse_MatchStatusDoesNotRenameTeams(t *testing.T) {
	lines := append(preamble(),
		at("20:30:00", `MatchStatus: Team playing "CT": NaVi`),
		at("20:30:00", `MatchStatus: Team playing "TERRORIST": Vitality`),
	)
	raw := parseLines(t, lines...)
	if raw.StartingCT != "Vitality" || raw.StartingT != "NaVi" {
		t.Errorf("MatchStatus lines must not change teams: CT=%q T=%q", raw.StartingCT, raw.StartingT)
	}
}

func TestParse_GameOverStopsAndDropsOpenRound(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:30", `World triggered "Round_End"`),
		at("20:02:00", `World triggered "Round_Start"`),
		at("20:02:10", alice+` [0 0 0] killed `+bob+` [1 1 1] with "m4a1"`),
		at("20:02:20", `Game Over: competitive 1 de_nuke score 16:9 after 47 min`),
		at("20:02:21", `World triggered "Round_End"`),
		at("20:03:00", `World triggered "Round_Start"`),
		at("20:03:30", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)
	if len(raw.Rounds) != 1 {
		t.Errorf("expected only the round closed before game over, got %d", len(raw.Rounds))
	}
}

func TestParse_ChatQuotingServerLinesIsChat(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:02", alice+` say "Game Over: competitive 1 de_nuke score 1:0 after 1 min"`),
		at("20:01:03", bob+` say_team "World triggered "Match_Start" on "de_dust2""`),
		at("20:01:04", bob+` say "World triggered "Round_End""`),
		at("20:01:10", alice+` [0 0 0] killed `+bob+` [10 10 0] with "ak47"`),
		at("20:01:11", `Team "CT" triggered "SFUI_Notice_CTs_Win" (CT "1") (T "0")`),
		at("20:01:12", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)

	if len(raw.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(raw.Rounds))
	}
	if raw.MapName != "de_nuke" || raw.Scan.Restarts != 0 {
		t.Errorf("chat must not restart the match: map=%q restarts=%d", raw.MapName, raw.Scan.Restarts)
	}
	r := raw.Rounds[0]
	if len(r.Chat) != 3 {
		t.Fatalf("expected 3 chat messages, got %d", len(r.Chat))
	}
	if r.Chat[0].Message != "Game Over: competitive 1 de_nuke score 1:0 after 1 min" {
		t.Errorf("chat[0] = %q", r.Chat[0].Message)
	}
	if len(r.Kills) != 1 {
		t.Errorf("expected the kill after the chat, got %d kills", len(r.Kills))
	}
	if !r.End.Equal(r.Start.Add(12 * time.Second)) {
		t.Errorf("round must end at the real Round_End, got %v", r.End.Sub(r.Start))
	}
}

func TestParse_FreezeTimeChatPrefixesNextRound(t *testing.T) {
	lines := append(preamble(),
		at("20:00:50", alice+` say "gl hf"`),
		at("20:00:55", bob+` say_team "eco"`),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:05", alice+` say "nice"`),
		at("20:01:30", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)
	if len(raw.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(raw.Rounds))
	}
	chat := raw.Rounds[0].Chat
	if len(chat) != 3 {
		t.Fatalf("expected 3 chat lines, got %d", len(chat))
	}
	if !chat[0].FreezeTime || !chat[1].FreezeTime || chat[2].FreezeTime {
		t.Errorf("freeze-time flags: %v %v %v", chat[0].FreezeTime, chat[1].FreezeTime, chat[2].FreezeTime)
	}
	if chat[0].Message != "gl hf" || chat[0].TeamChat {
		t.Errorf("chat[0]: %+v", chat[0])
	}
	if !chat[1].TeamChat || chat[1].Side != model.SideT {
		t.Errorf("chat[1]: %+v", chat[1])
	}
}

func TestParse_DamageWithAndWithoutHitGroup(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:01", alice+` [0 0 0] attacked `+bob+` [1 1 1] with "ak47" (damage "27") (damage_armor "3") (health "73") (armor "97") (hitgroup "left leg")`),
		at("20:01:02", alice+` [0 0 0] attacked `+bob+` [1 1 1] with "hegrenade" (damage "40") (damage_armor "0") (health "33") (armor "97")`),
		at("20:01:30", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)
	dmg := raw.Rounds[0].Damage
	if len(dmg) != 2 {
		t.Fatalf("expected 2 damage events, got %d", len(dmg))
	}
	if dmg[0].Damage != 27 || dmg[0].HitGroup != "left leg" {
		t.Errorf("dmg[0]: %+v", dmg[0])
	}
	if dmg[1].Damage != 40 || dmg[1].HitGroup != "" {
		t.Errorf("dmg[1]: %+v", dmg[1])
	}
}

func TestParse_FlashAndBlind(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:10", alice+` threw flashbang [100 200 30] flashbang entindex 7)`),
		at("20:01:11", bob+` blinded for 2.5 by `+alice+` from flashbang entindex 7 `),
		at("20:01:11", `"Spec<9><STEAM_1:0:9><Spectator>" blinded for 1.25 by `+alice+` from flashbang entindex 7 `),
		at("20:01:30", `World triggered "Round_End"`),
	)
	r := parseLines(t, lines...).Rounds[0]
	if len(r.Flashes) != 1 || r.Flashes[0].EntIndex != 7 || r.Flashes[0].ThrowerSide != model.FlashCT {
		t.Fatalf("unexpected flashes: %+v", r.Flashes)
	}
	if len(r.Blinds) != 2 {
		t.Fatalf("expected 2 blinds, got %d", len(r.Blinds))
	}
	if r.Blinds[0].Duration != 2.5 || r.Blinds[0].VictimSide != model.FlashT || r.Blinds[0].Thrower != "Alice" {
		t.Errorf("blind[0]: %+v", r.Blinds[0])
	}
	if r.Blinds[1].VictimSide != model.FlashSpectator || r.Blinds[1].Duration != 1.25 {
		t.Errorf("blind[1]: %+v", r.Blinds[1])
	}
}

func TestParse_AssistAndWorldKill(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:05", alice+` [0 0 0] killed "prop_dynamic<0><BOT><TERRORIST>" [1 1 1] with "knife"`),
		at("20:01:06", dana+` [0 0 0] killed `+carl+` [1 1 1] with "awp"`),
		at("20:01:06", alice+` assisted killing `+carl),
		at("20:01:30", `World triggered "Round_End"`),
	)
	r := parseLines(t, lines...).Rounds[0]
	if len(r.Kills) != 1 || r.Kills[0].Victim != "Carl" || r.Kills[0].Headshot {
		t.Errorf("expected only the player kill, got %+v", r.Kills)
	}
	if len(r.Assists) != 1 || r.Assists[0].Assister != "Alice" || r.Assists[0].Victim != "Carl" {
		t.Errorf("unexpected assists: %+v", r.Assists)
	}
}

func TestParse_WinReasons(t *testing.T) {
	cases := []struct {
		notice string
		side   model.Side
		want   model.WinReason
	}{
		{`Team "CT" triggered "SFUI_Notice_Bomb_Defused"`, model.SideCT, model.WinBombDefused},
		{`Team "TERRORIST" triggered "SFUI_Notice_Target_Bombed"`, model.SideT, model.WinBombExploded},
		{`Team "TERRORIST" triggered "SFUI_Notice_Terrorists_Win"`, model.SideT, model.WinElimination},
		{`Team "CT" triggered "SFUI_Notice_Target_Saved"`, model.SideCT, model.WinTimeout},
	}
	for _, tc := range cases {
		lines := append(preamble(),
			at("20:01:00", `World triggered "Round_Start"`),
			at("20:01:50", tc.notice),
			at("20:01:55", `World triggered "Round_End"`),
		)
		r := parseLines(t, lines...).Rounds[0]
		if r.Winner != tc.side || r.WinReason != tc.want {
			t.Errorf("%s: got winner=%v reason=%s", tc.notice, r.Winner, r.WinReason)
		}
	}
}

func TestParse_MalformedLinesIgnored(t *testing.T) {
	lines := append(preamble(),
		"garbage without timestamp",
		at("20:00:30", `something the parser has never heard of`),
		at("20:00:40", alice+` [0 0 0] killed `+bob+` [1 1 1] with "ak47"`), // no active round
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:30", `World triggered "Round_End"`),
		at("20:01:31", `World triggered "Round_End"`), // no active round
	)
	raw := parseLines(t, lines...)
	if len(raw.Rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(raw.Rounds))
	}
	if raw.Scan.Ignored != 4 {
		t.Errorf("Ignored: want 4, got %d", raw.Scan.Ignored)
	}
}

func TestParse_RoundNumbersContiguous(t *testing.T) {
	lines := preamble()
	lines = append(lines,
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:02:00", `World triggered "Round_Start"`), // previous round never ended
		at("20:02:30", `World triggered "Round_End"`),
		at("20:03:00", `World triggered "Round_Start"`),
		at("20:03:30", `World triggered "Round_End"`),
	)
	raw := parseLines(t, lines...)
	if len(raw.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(raw.Rounds))
	}
	for i, r := range raw.Rounds {
		if r.Number != i+1 {
			t.Errorf("round %d numbered %d", i, r.Number)
		}
	}
}

func TestParse_CRLFAndMissingLPrefix(t *testing.T) {
	data := strings.Join([]string{
		logDate + ` - 20:00:00: World triggered "Match_Start" on "de_inferno"`,
		logDate + ` - 20:00:00: Team playing "CT": A`,
		logDate + ` - 20:00:00: Team playing "TERRORIST": B`,
	}, "\r\n")
	raw, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if raw.MapName != "de_inferno" || raw.StartingT != "B" {
		t.Errorf("got map=%q T=%q", raw.MapName, raw.StartingT)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	raw, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(raw.Rounds) != 0 || raw.Rounds == nil {
		t.Errorf("expected empty non-nil rounds, got %v", raw.Rounds)
	}
}

func TestParse_RejectsBinary(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 0x00, 0x80})
	if !errors.Is(err, ErrNotText) {
		t.Errorf("expected ErrNotText, got %v", err)
	}
}

func TestParseLog_MissingFile(t *testing.T) {
	_, err := ParseLog(filepath.Join(t.TempDir(), "nope.log"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseLog_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.log")
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:30", `World triggered "Round_End"`),
	)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	raw, err := ParseLog(path)
	if err != nil {
		t.Fatalf("ParseLog: %v", err)
	}
	if len(raw.Rounds) != 1 {
		t.Errorf("expected 1 round, got %d", len(raw.Rounds))
	}
}

func TestParse_Deterministic(t *testing.T) {
	lines := append(preamble(),
		at("20:01:00", `World triggered "Round_Start"`),
		at("20:01:10", alice+` [0 0 0] killed `+bob+` [1 1 1] with "ak47"`),
		at("20:01:30", `World triggered "Round_End"`),
	)
	a := parseLines(t, lines...)
	b := parseLines(t, lines...)
	if a.LogHash != b.LogHash || len(a.Rounds) != len(b.Rounds) {
		t.Error("parsing the same bytes twice should give the same result")
	}
}
