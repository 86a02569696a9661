package network

import (
	"errors"
	"time"
)

const (
	txStatusSuccess  = "success"
	txStatusExecuted = "executed"
	txStatusFail     = "fail"
	txStatusInvalid  = "invalid"

	txPollInterval = 3 * time.Second
	txTimeout      = 2 * time.Minute
)

var (
	errEmptyBlockHash     = errors.New("empty block hash")
	errInvalidAmount      = errors.New("transfer amount must be positive")
	errInvalidBalance     = errors.New("invalid account balance")
	errNilOperatorKey     = errors.New("nil operator key")
	errTransactionFailed  = errors.New("transaction failed")
	errTransactionTimeout = errors.New("transaction not executed in time")
)
