package utils

const (
	DefaultConfigPath = "config.json"
	DefaultDbPath     = "lottery.db"
	DefaultLotteryKey = "main"

	// EgldDecimals is the number of decimals of the smallest eGLD unit
	EgldDecimals = 18

	OperatorWalletIndex = 0

	DefaultTransferGasLimit = 50000
	DefaultSettleInterval   = 60

	AddressHrp = "erd"
)
