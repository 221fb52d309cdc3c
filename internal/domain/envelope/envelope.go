package envelope

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

const (
	LeaguesTTL     = 24 * time.Hour
	FixturesTTL    = 24 * time.Hour
	HeadToHeadTTL  = 24 * time.Hour
	PredictionsTTL = 5 * time.Hour
)

// Envelope is a cached payload together with the instant it was produced.
// Payload and UpdatedAt are always encoded into one document.
type Envelope[T any] struct {
	Payload   T
	UpdatedAt time.Time
}

func New[T any](payload T, now time.Time) Envelope[T] {
	return Envelope[T]{Payload: payload, UpdatedAt: now.UTC()}
}

type wire[T any] struct {
	Payload   T           `json:"payload"`
	UpdatedAt epochMillis `json:"updatedAt"`
}

// Encode renders the envelope as {"payload":...,"updatedAt":<epoch ms>}.
func Encode[T any](env Envelope[T]) ([]byte, error) {
	raw, err := sonic.Marshal(wire[T]{Payload: env.Payload, UpdatedAt: epochMillis(env.UpdatedAt)})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return raw, nil
}

// Decode parses a stored envelope. An unreadable updatedAt is not an error:
// it decodes to the zero time, which every Policy treats as stale.
func Decode[T any](raw []byte) (Envelope[T], error) {
	var w wire[T]
	if err := sonic.Unmarshal(raw, &w); err != nil {
		return Envelope[T]{}, fmt.Errorf("decode envelope: %w", err)
	}
	return Envelope[T]{Payload: w.Payload, UpdatedAt: time.Time(w.UpdatedAt)}, nil
}

type epochMillis time.Time

func (e epochMillis) MarshalJSON() ([]byte, error) {
	t := time.Time(e)
	if t.IsZero() {
		return []byte("0"), nil
	}
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

func (e *epochMillis) UnmarshalJSON(raw []byte) error {
	*e = epochMillis(ParseTimestamp(raw))
	return nil
}

// ParseTimestamp accepts epoch milliseconds as a JSON number or numeric
// string, or an RFC3339 string. Anything else yields the zero time.
func ParseTimestamp(raw []byte) time.Time {
	value := bytes.TrimSpace(raw)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = bytes.TrimSpace(value[1 : len(value)-1])
	}
	if len(value) == 0 || string(value) == "null" {
		return time.Time{}
	}

	if ms, err := strconv.ParseFloat(string(value), 64); err == nil {
		if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 {
			return time.Time{}
		}
		return time.UnixMilli(int64(ms)).UTC()
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, string(value)); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
