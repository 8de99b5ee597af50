package parser

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pable/go-cs-matchlog/internal/logging"
	"github.com/pable/go-cs-matchlog/internal/model"
)

// ErrNotText is returned when the input cannot be decoded as UTF-8 text.
var ErrNotText = errors.New("log is not valid UTF-8 text")

const maxLineBytes = 10 * 1024 * 1024

// ParseLog reads the match log at path and returns its closed rounds.
func ParseLog(path string) (*model.RawMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	raw, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

// Parse extracts rounds from the full text of a match log. Only the part of
// the log after the last match-start marker is considered; malformed lines are
// skipped without error.
func Parse(data []byte) (*model.RawMatch, error) {
	if !utf8.Valid(data) {
		return nil, ErrNotText
	}

	// Hash file for idempotency key.
	logHash := fmt.Sprintf("%x", sha256.Sum256(data))

	lines, err := splitLines(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if err != nil {
		return nil, fmt.Errorf("split lines: %w", err)
	}

	start, starts := lastMatchStart(lines)

	st := newScanState()
	scan := model.ScanStats{}
	if starts > 1 {
		scan.Restarts = starts - 1
	}

scanLoop:
	for _, line := range lines[start:] {
		var out outcome
		st, out = step(st, line)
		scan.Lines++
		switch out {
		case ignored:
			scan.Ignored++
		case stop:
			break scanLoop
		}
	}

	logging.Logger().Debugf("scanned %d lines (%d ignored, %d earlier match starts skipped), %d rounds closed",
		scan.Lines, scan.Ignored, scan.Restarts, len(st.closed))

	return &model.RawMatch{
		LogHash:    logHash,
		MapName:    st.mapName,
		MatchDate:  st.date,
		StartingCT: st.ctTeam,
		StartingT:  st.tTeam,
		Rounds:     st.closed,
		Scan:       scan,
	}, nil
}

func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// lastMatchStart returns the index of the last match-start line (0 when there
// is none) and the number of match-start lines seen.
func lastMatchStart(lines []string) (idx, count int) {
	for i, line := range lines {
		if _, _, body, ok := splitLine(line); ok && matchStartRe.MatchString(body) {
			idx = i
			count++
		}
	}
	return idx, count
}
