package lottery

import "math/big"

// Ledger is the payment service holding the custodied funds. It is used for
// both mid-round refunds and end-of-round payouts and may fail at any time.
type Ledger interface {
	Transfer(to string, amount *big.Int) error
}

// RandomnessSource supplies the seed used to draw a winner. The engine never
// generates randomness itself, the source is trusted to return a value that
// entrants could not predict when they bought their tickets.
type RandomnessSource interface {
	Seed() (*big.Int, error)
}
