package storage

import (
	"path/filepath"
	"testing"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "lottery.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testSnapshot() *data.Snapshot {
	return &data.Snapshot{
		Entrants:         []string{"erd1alice", "erd1bob", "erd1alice"},
		TicketCost:       "1000000000000000000",
		TicketsAvailable: 2,
		MaxTickets:       5,
		Operator:         "erd1admin",
		Round:            7,
		Stats: data.Stats{
			RoundsSettled: 6,
			TicketsSold:   33,
			TotalPaid:     "30000000000000000000",
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save("main", testSnapshot()))

	loaded, err := s.Load("main")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), loaded)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("main", testSnapshot()))

	next := testSnapshot()
	next.Entrants = append(next.Entrants, "erd1carol")
	next.TicketsAvailable = 1
	require.NoError(t, s.Save("main", next))

	loaded, err := s.Load("main")
	require.NoError(t, err)
	assert.Equal(t, next, loaded)
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load("main")
	assert.Equal(t, ErrSnapshotNotFound, err)
}

func TestStore_EmptyName(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, errEmptyName, s.Save("", testSnapshot()))
}

func TestStore_LotteriesAreIndependent(t *testing.T) {
	s := newTestStore(t)
	other := testSnapshot()
	other.Round = 42
	require.NoError(t, s.Save("a", testSnapshot()))
	require.NoError(t, s.Save("b", other))

	loaded, err := s.Load("a")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), loaded)

	loaded, err = s.Load("b")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), loaded.Round)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lottery.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save("main", testSnapshot()))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Load("main")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), loaded)
}
