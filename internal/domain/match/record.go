package match

import "time"

type Analysis struct {
	HTML        string    `json:"html"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Record is the document stored under matches/{id}.
type Record struct {
	Match        Match       `json:"match"`
	HomeStanding *Standing   `json:"homeStanding,omitempty"`
	AwayStanding *Standing   `json:"awayStanding,omitempty"`
	HeadToHead   *HeadToHead `json:"headToHead,omitempty"`
	Analysis     *Analysis   `json:"analysis,omitempty"`
}

// Pieces lists the enrichment blocks a record still needs.
type Pieces struct {
	Standings  bool
	HeadToHead bool
}

func (p Pieces) Any() bool {
	return p.Standings || p.HeadToHead
}

func (r Record) MissingPieces(now time.Time, headToHeadTTL time.Duration) Pieces {
	return Pieces{
		Standings:  r.HomeStanding == nil || r.AwayStanding == nil,
		HeadToHead: r.HeadToHead == nil || r.HeadToHead.UpdatedAt.IsZero() || now.Sub(r.HeadToHead.UpdatedAt) >= headToHeadTTL,
	}
}

// NeedsHealing is true when a standing or the head-to-head block is absent,
// or the head-to-head block has outlived its TTL.
func (r Record) NeedsHealing(now time.Time, headToHeadTTL time.Duration) bool {
	return r.MissingPieces(now, headToHeadTTL).Any()
}

// Merge folds a freshly normalized match into the stored record. Mutable
// fields follow the incoming match; enrichment blocks are kept. It returns
// false when the stored record belongs to another provider's id space.
func Merge(existing Record, incoming Match) (Record, bool) {
	if existing.Match.ID == "" {
		return Record{Match: incoming}, true
	}
	if existing.Match.Provider != "" && incoming.Provider != "" && existing.Match.Provider != incoming.Provider {
		return existing, false
	}

	out := existing
	ref := existing.Match.Ref
	if incoming.Ref != nil {
		ref = incoming.Ref
	}
	out.Match = incoming
	out.Match.ID = existing.Match.ID
	out.Match.Ref = ref
	return out, true
}
