package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/pable/go-cs-matchlog/internal/aggregator"
)

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.Log.Errorf("encode response: %v", err)
		writeError(w, http.StatusInternalServerError, "encode response")
		return
	}
	writeRaw(w, status, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	writeRaw(w, status, body)
}

// writePath serves the part of the encoded document at a gjson path.
func (s *Server) writePath(w http.ResponseWriter, path string) {
	writeRaw(w, http.StatusOK, []byte(gjson.GetBytes(s.doc, path).Raw))
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, http.StatusOK, s.doc)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"map":      s.Match.Map,
		"date":     s.Match.Date,
		"duration": s.Match.Duration,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	teams := s.Match.Teams
	s.writeJSON(w, http.StatusOK, map[string]any{
		"matchId":            s.MatchID,
		"map":                s.Match.Map,
		"date":               s.Match.Date,
		"duration":           s.Match.Duration,
		"rounds":             len(s.Match.Rounds),
		"averageRoundLength": aggregator.AverageRoundLength(s.Match.Rounds),
		"teams":              []string{teams[0].Name, teams[1].Name},
		"score":              []int{teams[0].FinalScore, teams[1].FinalScore},
	})
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	s.writePath(w, "rounds")
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "round number must be an integer")
		return
	}
	for _, rd := range s.Match.Rounds {
		if rd.Number == n {
			s.writeJSON(w, http.StatusOK, rd)
			return
		}
	}
	writeError(w, http.StatusNotFound, "round not found")
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	s.writePath(w, "players")
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	for _, p := range s.Match.Players {
		if p.Name == name {
			s.writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "player not found")
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	s.writePath(w, "teams")
}

// handleQuery returns the sub-document selected by a gjson path, e.g.
// ?path=players.#.name or ?path=rounds.#(winReason=="bomb_defused")#.number
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}
	res := gjson.GetBytes(s.doc, path)
	if !res.Exists() {
		writeError(w, http.StatusNotFound, "path matched nothing")
		return
	}
	writeRaw(w, http.StatusOK, []byte(res.Raw))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rounds": len(s.Match.Rounds),
	})
}
