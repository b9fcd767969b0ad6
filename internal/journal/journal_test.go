package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJournalCapsEntries(t *testing.T) {
	j, err := New(4)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		j.Record(Entry{ID: fmt.Sprintf("id-%d", i), Tool: "generate_content", Started: time.Now(), OK: true})
	}
	require.Equal(t, 4, j.Len())

	recent := j.Recent(10)
	require.Len(t, recent, 4)
	// Newest first, oldest evicted.
	require.Equal(t, "id-9", recent[0].ID)
	require.Equal(t, "id-6", recent[3].ID)
}

func TestJournalRecentLimit(t *testing.T) {
	j, err := New(8)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		j.Record(Entry{ID: fmt.Sprintf("id-%d", i)})
	}
	require.Len(t, j.Recent(2), 2)
	require.Empty(t, j.Recent(0))
}

func TestNextIDUnique(t *testing.T) {
	j, err := New(8)
	require.NoError(t, err)
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := j.NextID("generate_content")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNilJournalIsSafe(t *testing.T) {
	var j *Journal
	j.Record(Entry{ID: "x"})
	require.Nil(t, j.Recent(5))
	require.Zero(t, j.Len())
}
