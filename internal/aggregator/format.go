package aggregator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pable/go-cs-matchlog/internal/model"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// formatClock renders whole seconds as M:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// relativeClock renders the offset of at from start as M:SS, or -M:SS when
// at precedes start.
func relativeClock(at, start time.Time) string {
	secs := int(at.Sub(start) / time.Second)
	if secs < 0 {
		return "-" + formatClock(-secs)
	}
	return formatClock(secs)
}

// matchDuration is the wall-clock span from the first round's start to the
// last round's end.
func matchDuration(rounds []model.Round) string {
	if len(rounds) == 0 {
		return formatClock(0)
	}
	secs := int(rounds[len(rounds)-1].End.Sub(rounds[0].Start) / time.Second)
	return formatClock(max(0, secs))
}

// formatDate converts the log's MM/DD/YYYY date to DD/MM/YYYY.
func formatDate(logDate string) string {
	parts := strings.Split(logDate, "/")
	if len(parts) != 3 {
		return ""
	}
	return parts[1] + "/" + parts[0] + "/" + parts[2]
}

// AverageRoundLength returns the mean round duration as M:SS, or "0:00" when
// there are no rounds.
func AverageRoundLength(rounds []model.RoundData) string {
	if len(rounds) == 0 {
		return formatClock(0)
	}
	total := 0
	for _, r := range rounds {
		total += r.Duration
	}
	return formatClock(int(math.Round(float64(total) / float64(len(rounds)))))
}

// perRound is total/rounds rounded to one decimal, 0 when rounds is 0.
func perRound(total, rounds int) float64 {
	if rounds <= 0 {
		return 0
	}
	return math.Round(float64(total)/float64(rounds)*10) / 10
}

// percent is part/whole as a whole-number percentage, 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part) / float64(whole) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
