package normalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-aggregator/internal/domain/competition"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/match"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/odds"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/prediction"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/id"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

var ErrMalformedRecord = errors.New("malformed upstream record")

const (
	defaultCompetitionName = "Football Match"
	defaultCompetitionCode = "FBL"
)

// Normalizer converts provider payloads into canonical records. Records that
// cannot be identified are skipped and logged; the rest of a batch proceeds.
type Normalizer struct {
	logger *logging.Logger
	ids    id.Generator
}

func New(logger *logging.Logger, ids id.Generator) *Normalizer {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewSyntheticGenerator()
	}
	return &Normalizer{logger: logger, ids: ids}
}

func (n *Normalizer) skip(provider, reason string, args ...any) {
	logSkip(n.logger, provider, reason, args...)
}

func (n *Normalizer) Competitions(raws []FootballDataCompetition) []competition.Competition {
	out := make([]competition.Competition, 0, len(raws))
	for _, raw := range raws {
		code := strings.TrimSpace(raw.Code)
		name := strings.TrimSpace(raw.Name)
		if code == "" && raw.ID <= 0 {
			n.skip(match.ProviderFootballData, "competition has no code", "name", name)
			continue
		}
		if code == "" {
			code = strconv.FormatInt(raw.ID, 10)
		}
		out = append(out, competition.Competition{
			ID:     formatID(raw.ID),
			Code:   code,
			Name:   firstNonEmpty(name, code),
			Emblem: strings.TrimSpace(raw.Emblem),
			Kind:   competition.ParseKind(raw.Type),
		})
	}
	return out
}

func (n *Normalizer) FootballDataMatches(comp competition.Competition, raws []FootballDataMatch) []match.Match {
	out := make([]match.Match, 0, len(raws))
	for _, raw := range raws {
		item, err := n.footballDataMatch(comp, raw)
		if err != nil {
			n.skip(match.ProviderFootballData, err.Error(), "competition", comp.Code)
			continue
		}
		out = append(out, item)
	}
	return out
}

// FootballDataMatch normalizes a single match lookup; its competition comes
// from the embedded competition block.
func (n *Normalizer) FootballDataMatch(raw FootballDataMatch) (match.Match, error) {
	var comp competition.Competition
	if raw.Competition != nil {
		comp = competition.Competition{
			Code:   strings.TrimSpace(raw.Competition.Code),
			Name:   strings.TrimSpace(raw.Competition.Name),
			Emblem: strings.TrimSpace(raw.Competition.Emblem),
		}
	}
	return n.footballDataMatch(comp, raw)
}

func (n *Normalizer) footballDataMatch(comp competition.Competition, raw FootballDataMatch) (match.Match, error) {
	home := footballDataTeam(raw.HomeTeam)
	away := footballDataTeam(raw.AwayTeam)

	item := match.Match{
		ID:                formatID(raw.ID),
		Provider:          match.ProviderFootballData,
		SportKey:          comp.Code,
		CompetitionCode:   comp.Code,
		CompetitionName:   firstNonEmpty(comp.Name, defaultCompetitionName),
		CompetitionEmblem: comp.Emblem,
		HomeTeam:          home,
		AwayTeam:          away,
		KickoffAt:         parseProviderDateTime(raw.UTCDate),
		Status:            MapFootballDataStatus(raw.Status),
		Venue:             strings.TrimSpace(string(raw.Venue)),
	}
	if raw.Area != nil {
		item.Country = strings.TrimSpace(raw.Area.Name)
	}
	if raw.Matchday != nil {
		item.Matchday = *raw.Matchday
	}
	if raw.Score != nil && raw.Score.FullTime != nil {
		item.Score = match.Score{Home: raw.Score.FullTime.Home, Away: raw.Score.FullTime.Away}
	}

	if err := n.identify(&item); err != nil {
		return match.Match{}, err
	}
	item.ApplyDefaults()
	return item, nil
}

func (n *Normalizer) APIFootballFixtures(raws []APIFootballFixture) []match.Match {
	out := make([]match.Match, 0, len(raws))
	for _, raw := range raws {
		item, err := n.APIFootballFixture(raw)
		if err != nil {
			n.skip(match.ProviderAPIFootball, err.Error())
			continue
		}
		out = append(out, item)
	}
	return out
}

func (n *Normalizer) APIFootballFixture(raw APIFootballFixture) (match.Match, error) {
	item := match.Match{Provider: match.ProviderAPIFootball}
	ref := &match.ProviderRef{}

	if raw.Fixture != nil {
		item.ID = formatID(raw.Fixture.ID)
		ref.FixtureID = raw.Fixture.ID
		item.KickoffAt = parseProviderDateTime(raw.Fixture.Date)
		if item.KickoffAt.IsZero() && raw.Fixture.Timestamp > 0 {
			item.KickoffAt = time.Unix(raw.Fixture.Timestamp, 0).UTC()
		}
		if raw.Fixture.Venue != nil {
			item.Venue = strings.TrimSpace(raw.Fixture.Venue.Name)
		}
		if raw.Fixture.Status != nil {
			item.Status = MapAPIFootballStatus(raw.Fixture.Status.Short)
		}
	}
	if item.Status == "" {
		item.Status = match.StatusScheduled
	}

	item.CompetitionName = defaultCompetitionName
	item.CompetitionCode = defaultCompetitionCode
	if raw.League != nil {
		item.CompetitionName = firstNonEmpty(strings.TrimSpace(raw.League.Name), defaultCompetitionName)
		item.CompetitionEmblem = strings.TrimSpace(raw.League.Logo)
		item.Country = strings.TrimSpace(raw.League.Country)
		item.CompetitionCode = countryCode(item.Country)
		item.Matchday = roundNumber(raw.League.Round)
		ref.LeagueID = raw.League.ID
		ref.Season = raw.League.Season
	}
	item.SportKey = item.CompetitionCode

	if raw.Teams != nil {
		item.HomeTeam = apiFootballTeam(raw.Teams.Home)
		item.AwayTeam = apiFootballTeam(raw.Teams.Away)
		if raw.Teams.Home != nil {
			ref.HomeTeamID = raw.Teams.Home.ID
		}
		if raw.Teams.Away != nil {
			ref.AwayTeamID = raw.Teams.Away.ID
		}
	}
	if raw.Goals != nil {
		item.Score = match.Score{Home: raw.Goals.Home, Away: raw.Goals.Away}
	}

	if err := n.identify(&item); err != nil {
		return match.Match{}, err
	}
	if ref.FixtureID > 0 || ref.HasTeams() {
		item.Ref = ref
	}
	item.ApplyDefaults()
	return item, nil
}

// HeadToHead maps previous meetings. Entries without a fixture id or team
// names are skipped.
func (n *Normalizer) HeadToHead(raws []APIFootballFixture) []match.HeadToHeadEntry {
	out := make([]match.HeadToHeadEntry, 0, len(raws))
	for _, raw := range raws {
		if raw.Fixture == nil || raw.Fixture.ID <= 0 || raw.Teams == nil || raw.Teams.Home == nil || raw.Teams.Away == nil {
			n.skip(match.ProviderAPIFootball, "head-to-head entry without fixture or teams")
			continue
		}

		entry := match.HeadToHeadEntry{
			FixtureID: raw.Fixture.ID,
			Date:      parseProviderDateTime(raw.Fixture.Date),
			HomeTeam:  firstNonEmpty(strings.TrimSpace(raw.Teams.Home.Name), match.DefaultHomeTeam),
			AwayTeam:  firstNonEmpty(strings.TrimSpace(raw.Teams.Away.Name), match.DefaultAwayTeam),
			Status:    match.StatusScheduled,
		}
		if raw.Fixture.Status != nil {
			entry.Status = MapAPIFootballStatus(raw.Fixture.Status.Short)
		}
		if raw.League != nil {
			entry.CompetitionName = strings.TrimSpace(raw.League.Name)
		}
		if raw.Goals != nil {
			entry.HomeGoals = intValue(raw.Goals.Home)
			entry.AwayGoals = intValue(raw.Goals.Away)
			if raw.Goals.Home != nil && raw.Goals.Away != nil {
				entry.Winner = match.DeriveWinner(entry.HomeGoals, entry.AwayGoals)
			}
		}
		out = append(out, entry)
	}
	return out
}

// Standings flattens every group table of the response.
func (n *Normalizer) Standings(raws []APIFootballStandings) []match.Standing {
	out := make([]match.Standing, 0)
	for _, raw := range raws {
		if raw.League == nil {
			continue
		}
		for _, group := range raw.League.Standings {
			for _, row := range group {
				if row.Team == nil || row.Team.ID <= 0 {
					n.skip(match.ProviderAPIFootball, "standing row without team")
					continue
				}
				standing := match.Standing{
					TeamID:    row.Team.ID,
					TeamName:  strings.TrimSpace(row.Team.Name),
					Rank:      row.Rank,
					Points:    row.Points,
					GoalsDiff: row.GoalsDiff,
					Form:      strings.TrimSpace(row.Form),
				}
				if row.All != nil {
					standing.Played = row.All.Played
					standing.Won = row.All.Win
					standing.Draw = row.All.Draw
					standing.Lost = row.All.Lose
				}
				out = append(out, standing)
			}
		}
	}
	return out
}

func (n *Normalizer) OddsSports(raws []OddsSport) []odds.Sport {
	out := make([]odds.Sport, 0, len(raws))
	for _, raw := range raws {
		key := strings.TrimSpace(raw.Key)
		if key == "" {
			n.skip(match.ProviderOdds, "sport without key", "title", raw.Title)
			continue
		}
		out = append(out, odds.Sport{
			Key:          key,
			Group:        strings.TrimSpace(raw.Group),
			Title:        firstNonEmpty(strings.TrimSpace(raw.Title), key),
			Description:  strings.TrimSpace(raw.Description),
			Active:       raw.Active,
			HasOutrights: raw.HasOutrights,
		})
	}
	return out
}

func (n *Normalizer) OddsEvent(raw OddsEvent) (odds.Event, error) {
	sportKey := strings.TrimSpace(raw.SportKey)
	title := firstNonEmpty(strings.TrimSpace(raw.SportTitle), strings.ReplaceAll(sportKey, "_", " "))
	item := match.Match{
		ID:              strings.TrimSpace(raw.ID),
		Provider:        match.ProviderOdds,
		SportKey:        sportKey,
		CompetitionName: firstNonEmpty(title, defaultCompetitionName),
		HomeTeam:        match.Team{Name: strings.TrimSpace(raw.HomeTeam)},
		AwayTeam:        match.Team{Name: strings.TrimSpace(raw.AwayTeam)},
		KickoffAt:       parseProviderDateTime(raw.CommenceTime),
		Status:          MapOddsStatus(raw.Completed),
	}
	if err := n.identify(&item); err != nil {
		return odds.Event{}, err
	}
	item.ApplyDefaults()

	bookmakers := make([]odds.Bookmaker, 0, len(raw.Bookmakers))
	for _, b := range raw.Bookmakers {
		markets := make([]odds.Market, 0, len(b.Markets))
		for _, m := range b.Markets {
			outcomes := make([]odds.Outcome, 0, len(m.Outcomes))
			for _, o := range m.Outcomes {
				outcomes = append(outcomes, odds.Outcome{Name: o.Name, Price: o.Price, Point: o.Point})
			}
			markets = append(markets, odds.Market{
				Key:        m.Key,
				LastUpdate: parseProviderDateTime(m.LastUpdate),
				Outcomes:   outcomes,
			})
		}
		bookmakers = append(bookmakers, odds.Bookmaker{
			Key:        b.Key,
			Title:      firstNonEmpty(b.Title, b.Key),
			LastUpdate: parseProviderDateTime(b.LastUpdate),
			Markets:    markets,
		})
	}

	return odds.Event{Match: item, SportTitle: title, Bookmakers: bookmakers}, nil
}

// Prediction wraps the opaque provider prediction payload with sanitized keys.
func (n *Normalizer) Prediction(matchID string, raw map[string]any, now time.Time) prediction.Record {
	return prediction.NewRecord(matchID, raw, now)
}

// identify keeps the provider id, or assigns a synthetic one when the payload
// has none but names both teams.
func (n *Normalizer) identify(item *match.Match) error {
	if item.ID != "" {
		return nil
	}
	if strings.TrimSpace(item.HomeTeam.Name) == "" || strings.TrimSpace(item.AwayTeam.Name) == "" {
		return fmt.Errorf("%w: record has neither id nor both team names", ErrMalformedRecord)
	}
	item.ID = n.ids.NewID()
	item.Synthetic = true
	return nil
}

func footballDataTeam(raw *FootballDataTeam) match.Team {
	if raw == nil {
		return match.Team{}
	}
	return match.Team{
		ID:       formatID(raw.ID),
		Name:     firstNonEmpty(strings.TrimSpace(raw.Name), strings.TrimSpace(raw.ShortName)),
		CrestURL: strings.TrimSpace(raw.Crest),
	}
}

func apiFootballTeam(raw *APIFootballTeam) match.Team {
	if raw == nil {
		return match.Team{}
	}
	return match.Team{
		ID:       formatID(raw.ID),
		Name:     strings.TrimSpace(raw.Name),
		CrestURL: strings.TrimSpace(raw.Logo),
	}
}

func formatID(value int64) string {
	if value <= 0 {
		return ""
	}
	return strconv.FormatInt(value, 10)
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// countryCode derives a short competition code from the country name.
func countryCode(country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		return defaultCompetitionCode
	}
	runes := []rune(strings.ToUpper(country))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// roundNumber reads the trailing number of rounds such as "Regular Season - 12".
func roundNumber(round string) int {
	round = strings.TrimSpace(round)
	idx := strings.LastIndexAny(round, " -")
	if idx >= 0 {
		round = round[idx+1:]
	}
	value, err := strconv.Atoi(round)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseProviderDateTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
