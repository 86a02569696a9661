package bot

import (
	"math/big"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/DrDelphi/EsdtLotteryBot/lottery"
)

// ChainHandler is the network side of the lottery: it custodies the pool in
// the operator wallet, moves user payments and supplies settlement seeds
type ChainHandler interface {
	lottery.Ledger
	lottery.RandomnessSource
	OperatorAddress() string
	GetBalance(address string) (*big.Int, error)
	SendTransaction(privateKey []byte, to string, amount *big.Int, gasLimit uint64, function string) (string, error)
	EstimateGasLimit(baseGasLimit uint64, function string) uint64
	TransactionFee(gasLimit uint64) *big.Int
	WaitForTransaction(hash string) error
}

// SnapshotStorer persists the lottery state between restarts
type SnapshotStorer interface {
	Save(name string, snapshot *data.Snapshot) error
	Load(name string) (*data.Snapshot, error)
}
