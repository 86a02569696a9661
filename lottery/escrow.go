package lottery

import "math/big"

// Escrow keeps the books of the value custodied for the current round. The
// value itself lives in the Ledger, Escrow only moves it out. Only the round
// total is tracked, not per-identity deposits.
type Escrow struct {
	ledger Ledger
	total  *big.Int
}

// NewEscrow - creates an empty escrow paying out through ledger
func NewEscrow(ledger Ledger) *Escrow {
	return &Escrow{
		ledger: ledger,
		total:  big.NewInt(0),
	}
}

// Hold records amount as custodied on behalf of identity
func (e *Escrow) Hold(identity string, amount *big.Int) {
	e.total.Add(e.total, amount)
	log.Trace("escrow hold", "from", identity, "amount", amount.String(), "total", e.total.String())
}

// Release pays amount of the held funds to identity. Either the ledger accepts
// the whole transfer and the held total drops by amount, or an error is
// returned and the books are unchanged.
func (e *Escrow) Release(identity string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errInvalidAmount
	}
	if amount.Cmp(e.total) > 0 {
		return errInsufficientCustody
	}
	if amount.Sign() == 0 {
		return nil
	}

	err := e.ledger.Transfer(identity, new(big.Int).Set(amount))
	if err != nil {
		log.Warn("escrow release failed", "to", identity, "amount", amount.String(), "error", err)
		return err
	}

	e.total.Sub(e.total, amount)

	return nil
}

// Refund sends back value that was offered but never held
func (e *Escrow) Refund(identity string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}

	err := e.ledger.Transfer(identity, new(big.Int).Set(amount))
	if err != nil {
		log.Warn("escrow refund failed", "to", identity, "amount", amount.String(), "error", err)
		return err
	}

	return nil
}

func (e *Escrow) Total() *big.Int {
	return new(big.Int).Set(e.total)
}

// Reset forgets the custody of the settled round
func (e *Escrow) Reset() {
	e.total = big.NewInt(0)
}
