package change

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var since = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name       string
		createDate time.Time
		writeDate  time.Time
		want       Type
	}{
		{"created after watermark", since.Add(time.Hour), since.Add(time.Hour), Created},
		{"written after watermark only", since.Add(-time.Hour), since.Add(time.Minute), Updated},
		{"create wins over write", since.Add(time.Second), since.Add(time.Hour), Created},
		// The source filter is strictly exclusive, so a row at exactly
		// the watermark would never arrive; if it did, it is not a create.
		{"exactly at watermark is not created", since, since.Add(time.Nanosecond), Updated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.createDate, tc.writeDate, since))
		})
	}
}

func TestClassifyExactlyOne(t *testing.T) {
	// Any row passing the source filter lands in exactly one bucket.
	for _, offset := range []time.Duration{-time.Hour, time.Second, time.Hour} {
		create := since.Add(offset)
		got := Classify(create, since.Add(time.Hour), since)
		if create.After(since) {
			assert.Equal(t, Created, got)
		} else {
			assert.Equal(t, Updated, got)
		}
	}
}

func TestSetAddAndCount(t *testing.T) {
	s := NewSet[string]()
	s.Add(Created, "a")
	s.Add(Updated, "b")
	s.Add(Updated, "c")

	assert.Equal(t, []string{"a"}, s.Created)
	assert.Equal(t, []string{"b", "c"}, s.Updated)
	assert.Empty(t, s.Deleted)
	assert.Equal(t, 3, s.Count())
}

func TestSetMarshalsEmptyArrays(t *testing.T) {
	// Clients depend on [] rather than null, deleted included.
	b, err := json.Marshal(NewSet[string]())
	require.NoError(t, err)
	assert.JSONEq(t, `{"created":[],"updated":[],"deleted":[]}`, string(b))
}
