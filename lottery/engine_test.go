package lottery

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operator = "admin"

func newTestEngine(t *testing.T, maxTickets uint64) (*Engine, *ledgerStub) {
	t.Helper()
	ledger := &ledgerStub{}
	e, err := NewEngine(Config{TicketCost: coins(1), MaxTickets: maxTickets, Operator: operator}, ledger)
	require.NoError(t, err)

	return e, ledger
}

func fillRound(t *testing.T, e *Engine, players ...string) {
	t.Helper()
	for _, p := range players {
		_, err := e.BuyTicket(p, coins(1))
		require.NoError(t, err)
	}
}

func requireRoundState(t *testing.T, e *Engine, sold uint64) {
	t.Helper()
	assert.Equal(t, sold, e.TicketsSold())
	assert.Equal(t, sold, uint64(len(e.Entrants())))
	assertAmount(t, new(big.Int).Mul(coins(1), new(big.Int).SetUint64(sold)), e.Pool())
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	ledger := &ledgerStub{}

	_, err := NewEngine(Config{TicketCost: big.NewInt(0), MaxTickets: 5, Operator: operator}, ledger)
	assert.Equal(t, errInvalidTicketCost, err)

	_, err = NewEngine(Config{MaxTickets: 5, Operator: operator}, ledger)
	assert.Equal(t, errInvalidTicketCost, err)

	_, err = NewEngine(Config{TicketCost: coins(1), Operator: operator}, ledger)
	assert.Equal(t, errInvalidMaxTickets, err)

	_, err = NewEngine(Config{TicketCost: coins(1), MaxTickets: 5}, ledger)
	assert.Equal(t, errEmptyOperator, err)

	_, err = NewEngine(Config{TicketCost: coins(1), MaxTickets: 5, Operator: operator}, nil)
	assert.Equal(t, errNilLedger, err)
}

func TestNewEngine_ConfigIsCopied(t *testing.T) {
	cost := coins(1)
	e, err := NewEngine(Config{TicketCost: cost, MaxTickets: 2, Operator: operator}, &ledgerStub{})
	require.NoError(t, err)

	cost.SetInt64(42)
	assertAmount(t, coins(1), e.Config().TicketCost)

	e.Config().TicketCost.SetInt64(7)
	assertAmount(t, coins(1), e.Config().TicketCost)
}

func TestEngine_InitialState(t *testing.T) {
	e, _ := newTestEngine(t, 5)

	assert.Equal(t, PhaseOpen, e.Phase())
	assert.Equal(t, uint64(1), e.Round())
	requireRoundState(t, e, 0)
}

func TestEngine_BuyTicketAssignsIndicesInOrder(t *testing.T) {
	e, ledger := newTestEngine(t, 5)

	for i, p := range []string{"alice", "bob", "alice"} {
		index, err := e.BuyTicket(p, coins(1))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), index)
		requireRoundState(t, e, uint64(i+1))
	}

	assert.Equal(t, []string{"alice", "bob", "alice"}, e.Entrants())
	assert.Equal(t, []uint64{0, 2}, e.TicketsOf("alice"))
	assert.Equal(t, 0, ledger.count())
}

func TestEngine_BuyTicketSoldOut(t *testing.T) {
	e, ledger := newTestEngine(t, 2)
	fillRound(t, e, "alice", "bob")
	assert.Equal(t, PhaseSettling, e.Phase())

	_, err := e.BuyTicket("carol", coins(1))
	assert.True(t, errors.Is(err, ErrSoldOut))
	assert.True(t, IsValidationError(err))
	assert.Equal(t, CodeNoTicketsAvailable, err.Error())

	// sold out wins over underpayment
	_, err = e.BuyTicket("carol", big.NewInt(1))
	assert.Equal(t, ErrSoldOut, err)

	requireRoundState(t, e, 2)
	assert.Equal(t, []string{"alice", "bob"}, e.Entrants())
	assert.Equal(t, 0, ledger.count())
}

func TestEngine_BuyTicketInsufficientPayment(t *testing.T) {
	e, ledger := newTestEngine(t, 5)
	fillRound(t, e, "alice")

	_, err := e.BuyTicket("bob", new(big.Int).Sub(coins(1), big.NewInt(1)))
	assert.Equal(t, ErrInsufficientPayment, err)
	assert.Equal(t, CodeInvalidAmount, err.Error())

	_, err = e.BuyTicket("bob", nil)
	assert.Equal(t, ErrInsufficientPayment, err)

	_, err = e.BuyTicket("bob", big.NewInt(-5))
	assert.Equal(t, ErrInsufficientPayment, err)

	requireRoundState(t, e, 1)
	assert.Equal(t, 0, ledger.count())
}

func TestEngine_BuyTicketRefundsOverpayment(t *testing.T) {
	e, ledger := newTestEngine(t, 5)
	k := big.NewInt(123)

	_, err := e.BuyTicket("alice", new(big.Int).Add(coins(1), k))
	require.NoError(t, err)

	assertAmount(t, k, ledger.sentTo("alice"))
	assert.Equal(t, 1, ledger.count())
	requireRoundState(t, e, 1)
}

func TestEngine_BuyTicketRefundFailureRollsBack(t *testing.T) {
	e, ledger := newTestEngine(t, 5)
	fillRound(t, e, "alice")

	ledger.setFailure(errLedgerDown)
	_, err := e.BuyTicket("bob", coins(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransferFailed))
	assert.True(t, errors.Is(err, errLedgerDown))
	assert.False(t, IsValidationError(err))

	requireRoundState(t, e, 1)
	assert.Empty(t, e.TicketsOf("bob"))

	// an exact payment needs no refund and still goes through
	ledger.setFailure(nil)
	index, err := e.BuyTicket("bob", coins(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), index)
}

func TestEngine_EndGameNotAuthorized(t *testing.T) {
	e, ledger := newTestEngine(t, 2)

	_, _, err := e.EndGame("alice", big.NewInt(1))
	assert.Equal(t, ErrNotAuthorized, err)

	fillRound(t, e, "alice", "bob")
	_, _, err = e.EndGame("alice", big.NewInt(1))
	assert.Equal(t, ErrNotAuthorized, err)
	assert.Equal(t, CodeNotAuthorised, err.Error())

	requireRoundState(t, e, 2)
	assert.Equal(t, 0, ledger.count())
}

func TestEngine_EndGameRoundNotComplete(t *testing.T) {
	e, ledger := newTestEngine(t, 3)

	_, _, err := e.EndGame(operator, big.NewInt(1))
	assert.Equal(t, ErrRoundNotComplete, err)

	fillRound(t, e, "alice", "bob")
	_, _, err = e.EndGame(operator, big.NewInt(1))
	assert.Equal(t, ErrRoundNotComplete, err)
	assert.Equal(t, CodeGameIsYetToEnd, err.Error())

	requireRoundState(t, e, 2)
	assert.Equal(t, 0, ledger.count())
}

func TestEngine_EndGameInvalidSeed(t *testing.T) {
	e, _ := newTestEngine(t, 1)
	fillRound(t, e, "alice")

	_, _, err := e.EndGame(operator, nil)
	assert.Equal(t, ErrInvalidSeed, err)

	_, _, err = e.EndGame(operator, big.NewInt(-1))
	assert.Equal(t, ErrInvalidSeed, err)

	requireRoundState(t, e, 1)
}

func TestEngine_EndGameWinnerIsSeedModMaxTickets(t *testing.T) {
	players := []string{"p0", "p1", "p2", "p3", "p4"}
	seeds := map[int64]string{0: "p0", 1: "p1", 4: "p4", 5: "p0", 21: "p1", 1003: "p3"}

	for seed, expected := range seeds {
		e, ledger := newTestEngine(t, 5)
		fillRound(t, e, players...)

		winner, payout, err := e.EndGame(operator, big.NewInt(seed))
		require.NoError(t, err)
		assert.Equal(t, expected, winner, "seed %d", seed)
		assertAmount(t, coins(5), payout)
		assertAmount(t, coins(5), ledger.sentTo(expected))
	}
}

func TestEngine_EndGameHugeSeed(t *testing.T) {
	e, _ := newTestEngine(t, 5)
	fillRound(t, e, "p0", "p1", "p2", "p3", "p4")

	seed, ok := new(big.Int).SetString("340282366920938463463374607431768211457", 10) // 2^128 + 1
	require.True(t, ok)
	expected := new(big.Int).Mod(seed, big.NewInt(5)).Int64()

	winner, _, err := e.EndGame(operator, seed)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("p%d", expected), winner)
}

func TestEngine_EndGamePayoutFailureKeepsRound(t *testing.T) {
	e, ledger := newTestEngine(t, 2)
	fillRound(t, e, "alice", "bob")

	ledger.setFailure(errLedgerDown)
	_, _, err := e.EndGame(operator, big.NewInt(1))
	assert.True(t, errors.Is(err, ErrTransferFailed))
	assert.True(t, errors.Is(err, errLedgerDown))
	assert.Equal(t, PhaseSettling, e.Phase())
	assert.Equal(t, uint64(1), e.Round())
	requireRoundState(t, e, 2)

	ledger.setFailure(nil)
	winner, payout, err := e.EndGame(operator, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "bob", winner)
	assertAmount(t, coins(2), payout)
}

func TestEngine_NewRoundAfterSettlement(t *testing.T) {
	e, ledger := newTestEngine(t, 2)
	fillRound(t, e, "alice", "bob")

	_, _, err := e.EndGame(operator, big.NewInt(0))
	require.NoError(t, err)

	assert.Equal(t, PhaseOpen, e.Phase())
	assert.Equal(t, uint64(2), e.Round())
	requireRoundState(t, e, 0)
	assert.Empty(t, e.Entrants())

	index, err := e.BuyTicket("carol", coins(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)
	assertAmount(t, coins(1), ledger.sentTo("carol"))

	index, err = e.BuyTicket("dave", coins(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), index)

	_, err = e.BuyTicket("erin", coins(1))
	assert.Equal(t, ErrSoldOut, err)

	winner, payout, err := e.EndGame(operator, big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, "dave", winner)
	assertAmount(t, coins(2), payout)

	info := e.Info()
	assert.Equal(t, uint64(2), info.Stats.RoundsSettled)
	assert.Equal(t, uint64(4), info.Stats.TicketsSold)
	assertAmount(t, coins(4), info.Stats.TotalPaid)
}

func TestEngine_ReceiveIsRejected(t *testing.T) {
	e, ledger := newTestEngine(t, 2)

	err := e.Receive("alice", coins(10))
	assert.Equal(t, ErrRejected, err)
	assert.Equal(t, CodeNotAllowed, err.Error())

	requireRoundState(t, e, 0)
	assert.Equal(t, 0, ledger.count())
}

func TestEngine_Settle(t *testing.T) {
	e, _ := newTestEngine(t, 2)
	fillRound(t, e, "alice", "bob")

	_, _, err := e.Settle(operator, nil)
	assert.Equal(t, errNilRandomness, err)

	_, _, err = e.Settle(operator, &seedStub{err: errLedgerDown})
	assert.Equal(t, errLedgerDown, err)
	requireRoundState(t, e, 2)

	_, _, err = e.Settle("alice", &seedStub{seed: big.NewInt(1)})
	assert.Equal(t, ErrNotAuthorized, err)

	winner, _, err := e.Settle(operator, &seedStub{seed: big.NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, "bob", winner)
}

func TestEngine_Info(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	fillRound(t, e, "alice")

	info := e.Info()
	assert.Equal(t, uint64(1), info.Round)
	assertAmount(t, coins(1), info.TicketCost)
	assert.Equal(t, uint64(3), info.MaxTickets)
	assert.Equal(t, uint64(1), info.TicketsSold)
	assert.Equal(t, uint64(2), info.TicketsAvailable)
	assertAmount(t, coins(1), info.Pool)
	assert.Equal(t, "Open", info.Phase)
	assert.Equal(t, operator, info.Operator)
}

func TestEngine_ConcurrentBuyers(t *testing.T) {
	const maxTickets = 50
	const buyers = 120
	e, ledger := newTestEngine(t, maxTickets)

	var wg sync.WaitGroup
	var mut sync.Mutex
	indices := make([]int, 0)
	soldOut := 0

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			index, err := e.BuyTicket(fmt.Sprintf("p%d", i), coins(2))
			mut.Lock()
			defer mut.Unlock()
			if err != nil {
				assert.Equal(t, ErrSoldOut, err)
				soldOut++
				return
			}
			indices = append(indices, int(index))
		}(i)
	}
	wg.Wait()

	sort.Ints(indices)
	require.Len(t, indices, maxTickets)
	for i, index := range indices {
		assert.Equal(t, i, index)
	}
	assert.Equal(t, buyers-maxTickets, soldOut)
	assert.Equal(t, maxTickets, ledger.count())
	requireRoundState(t, e, maxTickets)
}

// Five players pay 1, 2, 3, 1 and 1 for 1-coin tickets, a sixth is turned
// away and the operator ends the game with 21.
func TestEngine_FullRoundScenario(t *testing.T) {
	e, ledger := newTestEngine(t, 5)

	purchases := []struct {
		player string
		paid   int64
		refund int64
	}{
		{"alice", 1, 0},
		{"bob", 2, 1},
		{"john", 3, 2},
		{"charles", 1, 0},
		{"mike", 1, 0},
	}
	for i, p := range purchases {
		index, err := e.BuyTicket(p.player, coins(p.paid))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), index)
		assertAmount(t, coins(p.refund), ledger.sentTo(p.player))
	}
	assertAmount(t, coins(5), e.Pool())

	_, err := e.BuyTicket("alice", coins(1))
	assert.Equal(t, ErrSoldOut, err)

	winner, payout, err := e.EndGame(operator, big.NewInt(21))
	require.NoError(t, err)
	assert.Equal(t, "bob", winner)
	assertAmount(t, coins(5), payout)
	assertAmount(t, coins(6), ledger.sentTo("bob"))

	requireRoundState(t, e, 0)
	assert.Equal(t, PhaseOpen, e.Phase())
}
