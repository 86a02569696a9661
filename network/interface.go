package network

import (
	"context"

	erdgoCore "github.com/ElrondNetwork/elrond-sdk-erdgo/core"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
)

// proxyHandler is the part of the elrond proxy used by the NetworkManager
type proxyHandler interface {
	GetNetworkConfig(ctx context.Context) (*sdkData.NetworkConfig, error)
	GetAccount(ctx context.Context, address erdgoCore.AddressHandler) (*sdkData.Account, error)
	GetDefaultTransactionArguments(ctx context.Context, address erdgoCore.AddressHandler, networkConfigs *sdkData.NetworkConfig) (sdkData.ArgCreateTransaction, error)
	GetLatestHyperBlockNonce(ctx context.Context) (uint64, error)
	GetHyperBlockByNonce(ctx context.Context, nonce uint64) (*sdkData.HyperBlock, error)
	GetTransactionStatus(ctx context.Context, hash string) (string, error)
}

type txInteractor interface {
	ApplySignatureAndGenerateTx(skBytes []byte, arg sdkData.ArgCreateTransaction) (*sdkData.Transaction, error)
	SendTransaction(ctx context.Context, tx *sdkData.Transaction) (string, error)
}
