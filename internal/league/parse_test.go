package league

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultEntries(t *testing.T) {
	t.Run("full batch with pole and fastest lap", func(t *testing.T) {
		entries, err := ParseResultEntries("A,1,Yes,FL;B,2;C,3")
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, ResultEntry{Driver: "A", Position: 1, Pole: true, FastestLap: true}, entries[0])
		assert.Equal(t, ResultEntry{Driver: "B", Position: 2}, entries[1])
		assert.Equal(t, ResultEntry{Driver: "C", Position: 3}, entries[2])
	})

	t.Run("quotes and spaces are stripped", func(t *testing.T) {
		entries, err := ParseResultEntries(`"#10 MajorBlaze" , 1 , yes ; '#9 DakotaThomas', 2`)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "#10 MajorBlaze", entries[0].Driver)
		assert.True(t, entries[0].Pole)
		assert.Equal(t, "#9 DakotaThomas", entries[1].Driver)
	})

	t.Run("flag spellings are case-insensitive", func(t *testing.T) {
		entries, err := ParseResultEntries("A,1,YES,fl")
		require.NoError(t, err)
		assert.True(t, entries[0].Pole)
		assert.True(t, entries[0].FastestLap)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := ParseResultEntries(" ; ; ")
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("two poles rejected", func(t *testing.T) {
		_, err := ParseResultEntries("A,1,Yes;B,2,Yes")
		assert.ErrorIs(t, err, ErrDuplicatePole)
	})

	t.Run("two fastest laps rejected", func(t *testing.T) {
		_, err := ParseResultEntries("A,1,,FL;B,2,,FL")
		assert.ErrorIs(t, err, ErrDuplicateFastestLap)
	})

	t.Run("position zero rejected", func(t *testing.T) {
		_, err := ParseResultEntries("A,0")
		assert.ErrorIs(t, err, ErrBadEntry)
	})

	t.Run("position above grid size rejected", func(t *testing.T) {
		_, err := ParseResultEntries("A,37")
		assert.ErrorIs(t, err, ErrBadEntry)
	})

	t.Run("non-numeric position rejected", func(t *testing.T) {
		_, err := ParseResultEntries("A,first")
		assert.ErrorIs(t, err, ErrBadEntry)
	})

	t.Run("missing position rejected", func(t *testing.T) {
		_, err := ParseResultEntries("JustADriver")
		assert.ErrorIs(t, err, ErrBadEntry)
	})

	t.Run("oversized batch rejected", func(t *testing.T) {
		pieces := make([]string, MaxResultEntries+1)
		for i := range pieces {
			pieces[i] = fmt.Sprintf("driver%d,%d", i, i%MaxFinishPosition+1)
		}
		_, err := ParseResultEntries(strings.Join(pieces, ";"))
		assert.ErrorIs(t, err, ErrBatchTooLarge)
	})
}

func TestParseRaceEntries(t *testing.T) {
	valid, skipped := ParseRaceEntries("Daytona,2025-10-20; Lime Rock , 2025-10-27 ;badentry; ,2025-11-03")
	require.Len(t, valid, 2)
	assert.Equal(t, [2]string{"Daytona", "2025-10-20"}, valid[0])
	assert.Equal(t, [2]string{"Lime Rock", "2025-10-27"}, valid[1])
	assert.Equal(t, []string{"badentry", ",2025-11-03"}, skipped)
}

func TestSplitNames(t *testing.T) {
	names := SplitNames(" #99 Speedy ; #88 Racer ;; ")
	assert.Equal(t, []string{"#99 Speedy", "#88 Racer"}, names)
}
