package changelog_test

import (
	"testing"
	"time"

	. "github.com/pseudomuto/changekit/pkg/changelog"
	"github.com/pseudomuto/changekit/pkg/checksum"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	newChangeSet := func(id, sql string) *ChangeSet {
		cs := NewChangeSet(id, "jane", "db/changelog.yaml")
		cs.AddChange(&SQLChange{SQL: sql})
		return cs
	}

	ranFor := func(cs *ChangeSet) *RanChangeSet {
		sum, err := cs.GenerateCheckSum()
		require.NoError(t, err)

		return &RanChangeSet{
			ID:         cs.ID(),
			Author:     cs.Author(),
			FilePath:   cs.FilePath(),
			Checksum:   sum,
			ExecutedAt: time.Date(2024, 8, 10, 14, 30, 0, 0, time.UTC),
		}
	}

	applied := newChangeSet("applied", "SELECT 1")
	modified := newChangeSet("modified", "SELECT 2")
	rerun := newChangeSet("rerun", "SELECT 3")
	rerun.RunOnChange = true
	cleared := newChangeSet("cleared", "SELECT 4")
	legacy := newChangeSet("legacy", "SELECT 5")
	pending := newChangeSet("pending", "SELECT 6")

	modifiedRecord := ranFor(newChangeSet("modified", "SELECT 2 -- before edit"))
	rerunRecord := ranFor(newChangeSet("rerun", "SELECT 3 -- before edit"))
	clearedRecord := ranFor(cleared)
	clearedRecord.Checksum = checksum.Checksum{}
	legacyRecord := ranFor(legacy)
	legacyRecord.Checksum = checksum.Checksum{Version: 0, Digest: "abc"}
	removed := &RanChangeSet{ID: "removed", Author: "bob", FilePath: "db/old.yaml"}

	history := NewHistory([]*RanChangeSet{
		ranFor(applied),
		modifiedRecord,
		rerunRecord,
		clearedRecord,
		legacyRecord,
		removed,
		nil,
	})

	changeSets := []*ChangeSet{applied, modified, rerun, cleared, legacy, pending}

	t.Run("run status", func(t *testing.T) {
		tests := []struct {
			cs   *ChangeSet
			want RunStatus
		}{
			{applied, RunStatusAlreadyRan},
			{modified, RunStatusChecksumMismatch},
			{rerun, RunStatusRunAgain},
			{cleared, RunStatusAlreadyRan},
			{legacy, RunStatusAlreadyRan},
			{pending, RunStatusNotRan},
		}

		for _, tt := range tests {
			t.Run(tt.cs.ID(), func(t *testing.T) {
				status, err := history.RunStatus(tt.cs)
				require.NoError(t, err)
				require.Equal(t, tt.want, status, status.String())
			})
		}
	})

	t.Run("pending", func(t *testing.T) {
		got, err := history.Pending(changeSets)
		require.NoError(t, err)
		require.Equal(t, []*ChangeSet{rerun, pending}, got)
	})

	t.Run("modified", func(t *testing.T) {
		got, err := history.Modified(changeSets)
		require.NoError(t, err)
		require.Equal(t, []*ChangeSet{modified}, got)
	})

	t.Run("stale", func(t *testing.T) {
		require.Equal(t, []*ChangeSet{cleared, legacy}, history.Stale(changeSets))
	})

	t.Run("unknown", func(t *testing.T) {
		require.Equal(t, []*RanChangeSet{removed}, history.Unknown(changeSets))
	})

	t.Run("records", func(t *testing.T) {
		require.Len(t, history.Records(), 6)
		require.Same(t, removed, history.Get(NewChangeSet("removed", "bob", "db/old.yaml")))
		require.Nil(t, history.Get(pending))
	})

	t.Run("reversed change sets run again", func(t *testing.T) {
		after := NewHistory([]*RanChangeSet{ranFor(modified)})

		status, err := after.RunStatus(applied)
		require.NoError(t, err)
		require.Equal(t, RunStatusNotRan, status)
	})
}
