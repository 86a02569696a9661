package lottery

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLedgerDown = errors.New("ledger down")

type transfer struct {
	to     string
	amount *big.Int
}

type ledgerStub struct {
	mut       sync.Mutex
	transfers []transfer
	failWith  error
}

func (l *ledgerStub) Transfer(to string, amount *big.Int) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	if l.failWith != nil {
		return l.failWith
	}
	l.transfers = append(l.transfers, transfer{to: to, amount: new(big.Int).Set(amount)})

	return nil
}

func (l *ledgerStub) setFailure(err error) {
	l.mut.Lock()
	l.failWith = err
	l.mut.Unlock()
}

func (l *ledgerStub) sentTo(to string) *big.Int {
	l.mut.Lock()
	defer l.mut.Unlock()

	total := big.NewInt(0)
	for _, t := range l.transfers {
		if t.to == to {
			total.Add(total, t.amount)
		}
	}

	return total
}

func (l *ledgerStub) count() int {
	l.mut.Lock()
	defer l.mut.Unlock()

	return len(l.transfers)
}

type seedStub struct {
	seed *big.Int
	err  error
}

func (s *seedStub) Seed() (*big.Int, error) {
	return s.seed, s.err
}

// unit is one whole coin in the smallest denomination
var unit = big.NewInt(1000000)

func coins(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), unit)
}

func assertAmount(t *testing.T, expected *big.Int, actual *big.Int) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected.String(), actual.String())
}
