package prediction

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// Record holds the provider prediction payload for one match with every
// dotted key rewritten.
type Record struct {
	MatchID   string         `json:"matchId"`
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func NewRecord(matchID string, data map[string]any, now time.Time) Record {
	return Record{
		MatchID:   matchID,
		Data:      SanitizeMap(data),
		UpdatedAt: now.UTC(),
	}
}

// SanitizeKey replaces the storage path delimiter "." with "_".
func SanitizeKey(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}

// SanitizeKeys rewrites keys in nested maps and slices. Scalars are returned as is.
func SanitizeKeys(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return SanitizeMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = SanitizeKeys(item)
		}
		return out
	default:
		return value
	}
}

// SanitizeMap resolves key collisions deterministically: a key that was
// already clean wins, otherwise the first dotted key in sorted order.
func SanitizeMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for _, key := range slices.Sorted(maps.Keys(in)) {
		clean := SanitizeKey(key)
		if _, taken := out[clean]; taken && clean != key {
			continue
		}
		out[clean] = SanitizeKeys(in[key])
	}
	return out
}
