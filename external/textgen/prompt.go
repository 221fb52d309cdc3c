package textgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/usecase"
)

const systemPrompt = "You are a football analyst. Write a short pre-match preview as an HTML fragment " +
	"using only <h3>, <p>, <ul> and <li> tags. Do not include <html>, <head> or <body>."

// BuildPrompt renders the structured facts as the user message.
func BuildPrompt(prompt usecase.AnalysisPrompt) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, part := range parts {
			_, _ = buf.WriteString(part)
		}
		_ = buf.WriteByte('\n')
	}

	line("Fixture: ", strings.TrimSpace(prompt.HomeTeam), " vs ", strings.TrimSpace(prompt.AwayTeam))
	if league := strings.TrimSpace(prompt.League); league != "" {
		line("Competition: ", league)
	}
	if !prompt.KickoffAt.IsZero() {
		line("Kickoff: ", prompt.KickoffAt.UTC().Format(time.RFC1123))
	}
	if venue := strings.TrimSpace(prompt.Venue); venue != "" {
		line("Venue: ", venue)
	}

	writeStanding := func(label string, row *match.Standing) {
		if row == nil {
			return
		}
		line(label, " standing: rank ", strconv.Itoa(row.Rank),
			", ", strconv.Itoa(row.Points), " pts",
			", played ", strconv.Itoa(row.Played),
			" (W", strconv.Itoa(row.Won), " D", strconv.Itoa(row.Draw), " L", strconv.Itoa(row.Lost), ")",
			", goal difference ", strconv.Itoa(row.GoalsDiff),
			formSuffix(row.Form))
	}
	writeStanding(prompt.HomeTeam, prompt.HomeStanding)
	writeStanding(prompt.AwayTeam, prompt.AwayStanding)

	if len(prompt.HeadToHead) > 0 {
		line("Recent head-to-head:")
		for _, entry := range prompt.HeadToHead {
			date := ""
			if !entry.Date.IsZero() {
				date = entry.Date.UTC().Format("2006-01-02") + " "
			}
			line("- ", date, entry.HomeTeam, " ", strconv.Itoa(entry.HomeGoals), "-", strconv.Itoa(entry.AwayGoals), " ", entry.AwayTeam, winnerSuffix(entry.Winner))
		}
	}
	line("Cover current form, the head-to-head record and a predicted outcome.")

	return buf.String()
}

func formSuffix(form string) string {
	if form = strings.TrimSpace(form); form == "" {
		return ""
	}
	return ", form " + form
}

func winnerSuffix(winner match.Winner) string {
	if winner == "" {
		return ""
	}
	return " (" + string(winner) + ")"
}
