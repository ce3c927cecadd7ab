package id

import (
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	refs := make([]string, 100)
	for i := range refs {
		refs[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(refs))
	assert.Len(t, refs[0], 26)
	assert.NotEqual(t, refs[0], refs[1])
}

func TestNewAtEncodesTime(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	u, err := ulid.ParseStrict(NewAt(at))
	require.NoError(t, err)
	assert.True(t, ulid.Time(u.Time()).Equal(at))

	assert.Less(t, NewAt(at), NewAt(at.Add(time.Millisecond)))
}
