package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pable/go-cs-matchlog/internal/model"
)

// matchNamespace seeds the name-based UUIDs derived from log hashes.
var matchNamespace = uuid.MustParse("6f1c3c1e-52a4-4b7e-9a55-2f0d6b7c9e11")

// MatchID returns the stable match identifier for a log hash. The same log
// always yields the same ID.
func MatchID(hash string) string {
	return uuid.NewSHA1(matchNamespace, []byte(hash)).String()
}

// NewSummary builds the summary row for a match document.
func NewSummary(hash string, md *model.MatchData) model.MatchSummary {
	return model.MatchSummary{
		Hash:        hash,
		MatchID:     MatchID(hash),
		MapName:     md.Map,
		MatchDate:   md.Date,
		Duration:    md.Duration,
		CTTeam:      md.Teams[0].Name,
		TTeam:       md.Teams[1].Name,
		CTTeamScore: md.Teams[0].FinalScore,
		TTeamScore:  md.Teams[1].FinalScore,
		Rounds:      len(md.Rounds),
	}
}

// MatchExists returns true if a match with the given log hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores the document together with its flattened player and
// round rows in one transaction. Re-inserting the same hash replaces it.
func (db *DB) InsertMatch(hash string, md *model.MatchData) error {
	doc, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	summary := NewSummary(hash, md)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"player_match_stats", "round_results"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_hash = ?", hash); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(hash, match_id, map_name, match_date, duration, ct_team, t_team, ct_score, t_score, rounds, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Hash, summary.MatchID, summary.MapName, summary.MatchDate, summary.Duration,
		summary.CTTeam, summary.TTeam, summary.CTTeamScore, summary.TTeamScore, summary.Rounds,
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	playerStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_match_stats(
			match_hash, name, team,
			kills, deaths, assists, adr, hs_percent,
			opening_kills, opening_deaths, clutches_won, clutches_attempted,
			flashes_thrown, enemies_blinded, total_damage
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	for _, p := range md.Players {
		_, err = playerStmt.Exec(
			hash, p.Name, p.Team,
			p.Kills, p.Deaths, p.Assists, p.ADR, p.HSPercent,
			p.OpeningKills, p.OpeningDeaths, p.ClutchesWon, p.ClutchesAttempted,
			p.FlashStats.Thrown, p.FlashStats.EnemiesBlinded, p.TotalDamageDealt,
		)
		if err != nil {
			return fmt.Errorf("insert player_match_stats for %s: %w", p.Name, err)
		}
	}

	roundStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO round_results(
			match_hash, number, winner, winner_side, win_reason, duration, ct_score, t_score
		) VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer roundStmt.Close()

	for _, r := range md.Rounds {
		_, err = roundStmt.Exec(
			hash, r.Number, r.Winner, r.WinnerSide.String(), string(r.WinReason),
			r.Duration, r.Score.CT, r.Score.T,
		)
		if err != nil {
			return fmt.Errorf("insert round_results for round %d: %w", r.Number, err)
		}
	}
	return tx.Commit()
}

const summaryColumns = `hash, match_id, map_name, match_date, duration, ct_team, t_team, ct_score, t_score, rounds`

func scanSummary(row interface{ Scan(...any) error }) (model.MatchSummary, error) {
	var s model.MatchSummary
	err := row.Scan(&s.Hash, &s.MatchID, &s.MapName, &s.MatchDate, &s.Duration,
		&s.CTTeam, &s.TTeam, &s.CTTeamScore, &s.TTeamScore, &s.Rounds)
	return s, err
}

// ListMatches returns all stored match summaries, newest match date first.
// Dates are stored as DD/MM/YYYY, so they are reordered for sorting.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT ` + summaryColumns + `
		FROM matches
		ORDER BY substr(match_date, 7, 4) || substr(match_date, 4, 2) || substr(match_date, 1, 2) DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose hash starts with the given prefix.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	s, err := scanSummary(db.conn.QueryRow(`
		SELECT `+summaryColumns+`
		FROM matches WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetMatchDocument returns the stored JSON document for a hash, or nil when
// the match is unknown.
func (db *DB) GetMatchDocument(hash string) ([]byte, error) {
	var doc string
	err := db.conn.QueryRow("SELECT document FROM matches WHERE hash = ?", hash).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// LoadMatch decodes the stored document for a hash. It returns nil, nil when
// the match is unknown.
func (db *DB) LoadMatch(hash string) (*model.MatchData, error) {
	doc, err := db.GetMatchDocument(hash)
	if err != nil || doc == nil {
		return nil, err
	}
	var md model.MatchData
	if err := json.Unmarshal(doc, &md); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", hash, err)
	}
	return &md, nil
}

// GetPlayerMatchStats returns all player rows for a match hash, most kills first.
func (db *DB) GetPlayerMatchStats(hash string) ([]model.PlayerMatchRow, error) {
	rows, err := db.conn.Query(`
		SELECT name, team, kills, deaths, assists, adr, hs_percent,
		       opening_kills, opening_deaths, clutches_won, clutches_attempted,
		       flashes_thrown, enemies_blinded, total_damage
		FROM player_match_stats WHERE match_hash = ?
		ORDER BY kills DESC, name`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerMatchRow
	for rows.Next() {
		var s model.PlayerMatchRow
		if err := rows.Scan(
			&s.Name, &s.Team, &s.Kills, &s.Deaths, &s.Assists, &s.ADR, &s.HSPercent,
			&s.OpeningKills, &s.OpeningDeaths, &s.ClutchesWon, &s.ClutchesAttempted,
			&s.FlashesThrown, &s.EnemiesBlinded, &s.TotalDamage,
		); err != nil {
			return nil, err
		}
		s.MatchHash = hash
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetRoundResults returns the round rows for a match hash in round order.
func (db *DB) GetRoundResults(hash string) ([]model.RoundResult, error) {
	rows, err := db.conn.Query(`
		SELECT number, winner, winner_side, win_reason, duration, ct_score, t_score
		FROM round_results WHERE match_hash = ?
		ORDER BY number`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RoundResult
	for rows.Next() {
		var r model.RoundResult
		var side, reason string
		if err := rows.Scan(&r.Number, &r.Winner, &side, &reason, &r.Duration, &r.CTScore, &r.TScore); err != nil {
			return nil, err
		}
		if err := r.WinnerSide.UnmarshalText([]byte(side)); err != nil {
			return nil, fmt.Errorf("round %d: %w", r.Number, err)
		}
		r.WinReason = model.WinReason(reason)
		r.MatchHash = hash
		out = append(out, r)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and every value
// rendered as a string. NULLs become "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
