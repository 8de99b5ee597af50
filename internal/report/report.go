package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cs-matchlog/internal/model"
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cCT     = color.New(color.FgBlue, color.Bold)
	cT      = color.New(color.FgYellow, color.Bold)
	cMuted  = color.New(color.Faint)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func marker(name, focus string) string {
	if focus != "" && name == focus {
		return ">"
	}
	return " "
}

// PrintMatchHeader prints the match banner: map, date, teams in their
// starting-side colours and the final score.
func PrintMatchHeader(w io.Writer, s model.MatchSummary, avgRound string) {
	fmt.Fprintln(w)
	cHeader.Fprintf(w, "%s", s.MapName)
	fmt.Fprintf(w, "  |  %s  |  ", s.MatchDate)
	cCT.Fprintf(w, "%s", s.CTTeam)
	fmt.Fprintf(w, " %d – %d ", s.CTTeamScore, s.TTeamScore)
	cT.Fprintf(w, "%s", s.TTeam)
	fmt.Fprintf(w, "  |  %d rounds in %s (avg %s)\n", s.Rounds, s.Duration, avgRound)
	cMuted.Fprintf(w, "hash %s  match %s\n\n", shortHash(s.Hash), s.MatchID)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// PrintScoreboard prints the flattened per-player rows.
// If focus is non-empty, that player's row is marked with ">".
func PrintScoreboard(w io.Writer, rows []model.PlayerMatchRow, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "K", "A", "D", "+/-", "ADR", "HS%",
		"OPEN_K", "OPEN_D", "CLUTCH", "FLASHED", "DMG")

	for _, r := range rows {
		table.Append(
			marker(r.Name, focus),
			r.Name,
			r.Team,
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.Assists),
			strconv.Itoa(r.Deaths),
			fmt.Sprintf("%+d", r.Kills-r.Deaths),
			fmt.Sprintf("%.1f", r.ADR),
			fmt.Sprintf("%.0f%%", r.HSPercent),
			strconv.Itoa(r.OpeningKills),
			strconv.Itoa(r.OpeningDeaths),
			fmt.Sprintf("%d/%d", r.ClutchesWon, r.ClutchesAttempted),
			fmt.Sprintf("%d/%d", r.EnemiesBlinded, r.FlashesThrown),
			strconv.Itoa(r.TotalDamage),
		)
	}
	table.Render()
}

// PrintSideTable prints each player's split by half and by side, plus
// opening duel rate and multi-kill rounds.
func PrintSideTable(w io.Writer, players []model.PlayerStats, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "K/D", "+/-", "1H K-D", "1H ADR", "2H K-D", "2H ADR",
		"CT K-D", "CT ADR", "T K-D", "T ADR", "OPEN%", "2K", "3K", "4K", "ACE")

	kd := func(b model.BucketStats) string { return fmt.Sprintf("%d-%d", b.Kills, b.Deaths) }
	for _, p := range players {
		openPct := "—"
		if p.OpeningKills+p.OpeningDeaths > 0 {
			openPct = fmt.Sprintf("%.0f%%", p.OpeningDuelWinPct())
		}
		table.Append(
			marker(p.Name, focus),
			p.Name,
			fmt.Sprintf("%.2f", p.KDRatio()),
			fmt.Sprintf("%+d", p.KDDiff()),
			kd(p.FirstHalf),
			fmt.Sprintf("%.1f", p.FirstHalf.ADR),
			kd(p.SecondHalf),
			fmt.Sprintf("%.1f", p.SecondHalf.ADR),
			kd(p.CTSide),
			fmt.Sprintf("%.1f", p.CTSide.ADR),
			kd(p.TSide),
			fmt.Sprintf("%.1f", p.TSide.ADR),
			openPct,
			strconv.Itoa(p.MultiKillRounds.TwoK),
			strconv.Itoa(p.MultiKillRounds.ThreeK),
			strconv.Itoa(p.MultiKillRounds.FourK),
			strconv.Itoa(p.MultiKillRounds.Ace),
		)
	}
	table.Render()
}

// PrintFlashTable prints flashbang effectiveness and leg-shot share.
func PrintFlashTable(w io.Writer, players []model.PlayerStats, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "THROWN", "ENEMY", "ENEMY_S", "TEAM", "TEAM_S",
		"SELF", "SELF_S", "SPEC", "LEG%")

	for _, p := range players {
		f := p.FlashStats
		table.Append(
			marker(p.Name, focus),
			p.Name,
			strconv.Itoa(f.Thrown),
			strconv.Itoa(f.EnemiesBlinded),
			fmt.Sprintf("%.2f", f.EnemyBlindTime),
			strconv.Itoa(f.TeammatesBlinded),
			fmt.Sprintf("%.2f", f.TeammateBlindTime),
			strconv.Itoa(f.SelfFlashes),
			fmt.Sprintf("%.2f", f.SelfBlindTime),
			strconv.Itoa(f.SpectatorsFlashed),
			fmt.Sprintf("%.0f%%", p.LegShotPercent),
		)
	}
	table.Render()
}

// PrintRoundResults prints one line per round from the stored round rows.
func PrintRoundResults(w io.Writer, rounds []model.RoundResult) {
	table := newTable(w)
	table.Header("ROUND", "WINNER", "SIDE", "REASON", "DURATION", "SCORE")

	for _, r := range rounds {
		table.Append(
			strconv.Itoa(r.Number),
			r.Winner,
			r.WinnerSide.String(),
			string(r.WinReason),
			fmt.Sprintf("%d:%02d", r.Duration/60, r.Duration%60),
			fmt.Sprintf("%d-%d", r.CTScore, r.TScore),
		)
	}
	table.Render()
}

// PrintPlayerRounds prints a per-round drill-down for one player. Rounds in
// which the player had no kill, death or damage show dashes.
func PrintPlayerRounds(w io.Writer, rounds []model.RoundData, player string) {
	table := newTable(w)
	table.Header("ROUND", "SIDE", "K", "D", "DMG", "SURVIVED", "WINNER", "REASON")

	for _, r := range rounds {
		row := []any{strconv.Itoa(r.Number), "—", "—", "—", "—", "—", r.Winner, string(r.WinReason)}
		for _, ps := range r.PlayerStats {
			if ps.Name != player {
				continue
			}
			survived := "no"
			if ps.Survived {
				survived = "yes"
			}
			row[1] = ps.Side.String()
			row[2] = strconv.Itoa(ps.Kills)
			row[3] = strconv.Itoa(ps.Deaths)
			row[4] = strconv.Itoa(ps.Damage)
			row[5] = survived
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintChat prints the chat transcript of each round.
func PrintChat(w io.Writer, rounds []model.RoundData) {
	for _, r := range rounds {
		if len(r.Chat) == 0 {
			continue
		}
		cHeader.Fprintf(w, "Round %d\n", r.Number)
		for _, c := range r.Chat {
			scope := "all"
			if c.IsTeamChat {
				scope = "team"
			}
			sideColour := cT
			if c.Side == model.SideCT {
				sideColour = cCT
			}
			fmt.Fprintf(w, "  %6s  ", c.RelativeTime)
			sideColour.Fprintf(w, "%s", c.Player)
			fmt.Fprintf(w, " (%s): %s\n", scope, c.Message)
		}
	}
}
