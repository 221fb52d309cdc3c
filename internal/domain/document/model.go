package document

import (
	"fmt"
	"strings"
	"time"
)

const (
	CollectionLeagues     = "leagues"
	CollectionFixtures    = "fixtures"
	CollectionMatches     = "matches"
	CollectionPredictions = "predictions"
	CollectionInterest    = "interest"

	LeaguesKey = "all"
)

// Document is one keyed JSON value inside a collection. Data holds an
// encoded envelope; UpdatedAt mirrors the envelope stamp for listing.
// EventAt carries the kickoff time for match documents so old ones can be purged.
type Document struct {
	Collection string
	Key        string
	Data       []byte
	UpdatedAt  time.Time
	EventAt    *time.Time
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.Collection) == "" {
		return fmt.Errorf("document collection is required")
	}
	if strings.TrimSpace(d.Key) == "" {
		return fmt.Errorf("document key is required")
	}
	if len(d.Data) == 0 {
		return fmt.Errorf("document data is required")
	}
	return nil
}

// Path renders collection/key, the logical address used in logs and cache keys.
func (d Document) Path() string {
	return Path(d.Collection, d.Key)
}

func Path(collection, key string) string {
	return collection + "/" + key
}
