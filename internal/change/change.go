// Package change holds the watermark contract and the created/updated
// classification shared by every delta endpoint.
package change

import "time"

type Type string

const (
	Created Type = "created"
	Updated Type = "updated"
)

// Classify labels an entity against an exclusive watermark. The source
// query only returns rows where create_date > since OR write_date >
// since, so every entity is exactly one of Created/Updated: strictly
// newer create date wins, otherwise it is an update. Rows touched at
// exactly the watermark are not returned at all.
func Classify(createDate, writeDate, since time.Time) Type {
	if createDate.After(since) {
		return Created
	}
	return Updated
}

// Set is the result of one classification pass. Deleted is always empty:
// the upstream store keeps no tombstones, so removals are invisible to
// the feed. That gap is deliberate; do not synthesize deletions here.
type Set[T any] struct {
	Created []T     `json:"created"`
	Updated []T     `json:"updated"`
	Deleted []int64 `json:"deleted"`
}

// NewSet returns a Set whose slices marshal as [] rather than null.
func NewSet[T any]() Set[T] {
	return Set[T]{
		Created: []T{},
		Updated: []T{},
		Deleted: []int64{},
	}
}

// Add appends v to the sequence matching t.
func (s *Set[T]) Add(t Type, v T) {
	if t == Created {
		s.Created = append(s.Created, v)
		return
	}
	s.Updated = append(s.Updated, v)
}

// Count is the number of delivered entities. Deleted is excluded since
// it carries ids, not entities (and is empty anyway).
func (s *Set[T]) Count() int {
	return len(s.Created) + len(s.Updated)
}
