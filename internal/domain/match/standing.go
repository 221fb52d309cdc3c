package match

import "time"

type Standing struct {
	TeamID    int64  `json:"teamId"`
	TeamName  string `json:"teamName"`
	Rank      int    `json:"rank"`
	Points    int    `json:"points"`
	Played    int    `json:"played"`
	Won       int    `json:"won"`
	Draw      int    `json:"draw"`
	Lost      int    `json:"lost"`
	GoalsDiff int    `json:"goalsDiff"`
	Form      string `json:"form,omitempty"`
}

// FindStanding returns the table row of one team.
func FindStanding(rows []Standing, teamID int64) (Standing, bool) {
	for _, row := range rows {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return Standing{}, false
}

type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
	WinnerDraw Winner = "draw"
)

func DeriveWinner(homeGoals, awayGoals int) Winner {
	switch {
	case homeGoals > awayGoals:
		return WinnerHome
	case awayGoals > homeGoals:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

type HeadToHeadEntry struct {
	FixtureID       int64     `json:"fixtureId"`
	Date            time.Time `json:"date"`
	HomeTeam        string    `json:"homeTeam"`
	AwayTeam        string    `json:"awayTeam"`
	HomeGoals       int       `json:"homeGoals"`
	AwayGoals       int       `json:"awayGoals"`
	CompetitionName string    `json:"competitionName"`
	Status          Status    `json:"status"`
	Winner          Winner    `json:"winner,omitempty"`
}

// HeadToHead is cached on the match record with its own stamp.
type HeadToHead struct {
	Entries   []HeadToHeadEntry `json:"entries"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
