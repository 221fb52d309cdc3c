package envelope

import "time"

// Policy decides whether a cached envelope can still be served.
type Policy struct {
	Now func() time.Time
}

func NewPolicy() Policy {
	return Policy{Now: time.Now}
}

func (p Policy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// FreshAt reports whether a document stamped at updatedAt is younger than ttl.
// A zero stamp is always stale.
func (p Policy) FreshAt(updatedAt time.Time, ttl time.Duration) bool {
	if updatedAt.IsZero() || ttl <= 0 {
		return false
	}
	return p.now().Sub(updatedAt) < ttl
}

func IsFresh[T any](p Policy, env *Envelope[T], ttl time.Duration) bool {
	if env == nil {
		return false
	}
	return p.FreshAt(env.UpdatedAt, ttl)
}
