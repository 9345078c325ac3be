package change

import (
	"fmt"
	"time"
)

// Epoch is the watermark used when the client supplies none: far enough
// in the past that a first sync returns everything.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ParseSince parses a client watermark. Accepts RFC 3339 (with Z or a
// numeric offset) and the bare form without an offset, which is taken as
// UTC. Empty string means "from the beginning" and yields Epoch.
func ParseSince(s string) (time.Time, error) {
	if s == "" {
		return Epoch, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid since timestamp %q", s)
}
