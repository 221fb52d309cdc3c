package normalizer

import "encoding/json"

// Provider A (football-data.org v4).

type FootballDataArea struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type FootballDataCompetition struct {
	ID     int64             `json:"id"`
	Code   string            `json:"code"`
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Emblem string            `json:"emblem"`
	Area   *FootballDataArea `json:"area"`
}

// FootballDataCompetitionList keeps its elements raw so each one is decoded
// with DecodeRecords.
type FootballDataCompetitionList struct {
	Competitions []json.RawMessage `json:"competitions"`
}

type FootballDataTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
}

type FootballDataGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type FootballDataScore struct {
	FullTime *FootballDataGoals `json:"fullTime"`
}

type FootballDataMatch struct {
	ID          int64                    `json:"id"`
	UTCDate     string                   `json:"utcDate"`
	Status      string                   `json:"status"`
	Matchday    *int                     `json:"matchday"`
	Venue       VenueName                `json:"venue"`
	HomeTeam    *FootballDataTeam        `json:"homeTeam"`
	AwayTeam    *FootballDataTeam        `json:"awayTeam"`
	Score       *FootballDataScore       `json:"score"`
	Competition *FootballDataCompetition `json:"competition"`
	Area        *FootballDataArea        `json:"area"`
}

type FootballDataMatchList struct {
	Matches []json.RawMessage `json:"matches"`
}

// Provider B (api-football v3).

type APIFootballVenue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type APIFootballStatus struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

type APIFootballFixtureInfo struct {
	ID        int64              `json:"id"`
	Date      string             `json:"date"`
	Timestamp int64              `json:"timestamp"`
	Venue     *APIFootballVenue  `json:"venue"`
	Status    *APIFootballStatus `json:"status"`
}

type APIFootballLeague struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

type APIFootballTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type APIFootballTeams struct {
	Home *APIFootballTeam `json:"home"`
	Away *APIFootballTeam `json:"away"`
}

type APIFootballGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type APIFootballFixture struct {
	Fixture *APIFootballFixtureInfo `json:"fixture"`
	League  *APIFootballLeague      `json:"league"`
	Teams   *APIFootballTeams       `json:"teams"`
	Goals   *APIFootballGoals       `json:"goals"`
}

type APIFootballRecord struct {
	Played int `json:"played"`
	Win    int `json:"win"`
	Draw   int `json:"draw"`
	Lose   int `json:"lose"`
}

type APIFootballStandingRow struct {
	Rank      int                `json:"rank"`
	Team      *APIFootballTeam   `json:"team"`
	Points    int                `json:"points"`
	GoalsDiff int                `json:"goalsDiff"`
	Form      string             `json:"form"`
	All       *APIFootballRecord `json:"all"`
}

type APIFootballStandingLeague struct {
	ID        int64                      `json:"id"`
	Season    int                        `json:"season"`
	Standings [][]APIFootballStandingRow `json:"standings"`
}

type APIFootballStandings struct {
	League *APIFootballStandingLeague `json:"league"`
}

// Odds provider (the-odds-api v4).

type OddsSport struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	HasOutrights bool   `json:"has_outrights"`
}

type OddsOutcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point"`
}

type OddsMarket struct {
	Key        string        `json:"key"`
	LastUpdate string        `json:"last_update"`
	Outcomes   []OddsOutcome `json:"outcomes"`
}

type OddsBookmaker struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	LastUpdate string       `json:"last_update"`
	Markets    []OddsMarket `json:"markets"`
}

type OddsEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	SportTitle   string          `json:"sport_title"`
	CommenceTime string          `json:"commence_time"`
	Completed    *bool           `json:"completed"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []OddsBookmaker `json:"bookmakers"`
}
