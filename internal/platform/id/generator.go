package id

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyntheticPrefix marks ids minted locally for upstream records that came
// without one. Such ids are not stable across refreshes.
const SyntheticPrefix = "syn-"

// Generator creates ids for records the upstream did not identify.
type Generator interface {
	NewID() string
}

type SyntheticGenerator struct {
	now func() time.Time
}

func NewSyntheticGenerator() *SyntheticGenerator {
	return &SyntheticGenerator{now: time.Now}
}

// NewID returns syn-<unix millis>-<8 hex chars>.
func (g *SyntheticGenerator) NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return SyntheticPrefix + strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + suffix
}

func IsSynthetic(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), SyntheticPrefix)
}
