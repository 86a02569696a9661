package network

import (
	"context"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/ElrondNetwork/elrond-go-core/core"
	"github.com/ElrondNetwork/elrond-go-core/core/pubkeyConverter"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/blockchain"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/builders"
	sdkData "github.com/ElrondNetwork/elrond-sdk-erdgo/data"
	"github.com/ElrondNetwork/elrond-sdk-erdgo/interactors"
	"golang.org/x/xerrors"
)

var log = logger.GetOrCreate("network")

// NetworkManager - holds the required fields of a network manager. It is the
// ledger of the lottery: the operator wallet custodies the pool and every
// refund or payout is an eGLD transfer signed with the operator key.
type NetworkManager struct {
	NetworkConfig *sdkData.NetworkConfig
	cfg           *data.AppConfig

	proxy       proxyHandler
	conv        core.PubkeyConverter
	interactor  txInteractor
	operatorKey []byte
	operator    string
	nonces      *nonceTracker

	pollInterval time.Duration
	txTimeout    time.Duration
}

// NewNetworkManager - creates a new NetworkManager object
func NewNetworkManager(cfg *data.AppConfig, operatorKey []byte) (*NetworkManager, error) {
	proxy := blockchain.NewElrondProxy(cfg.Network.Proxy, nil)

	builder, err := builders.NewTxBuilder(blockchain.NewTxSigner())
	if err != nil {
		log.Error("can not create transaction builder", "error", err)
		return nil, err
	}

	ti, err := interactors.NewTransactionInteractor(proxy, builder)
	if err != nil {
		log.Error("error creating transaction interactor", "error", err)
		return nil, err
	}

	return newNetworkManager(cfg, proxy, ti, operatorKey)
}

func newNetworkManager(cfg *data.AppConfig, proxy proxyHandler, ti txInteractor, operatorKey []byte) (*NetworkManager, error) {
	if len(operatorKey) == 0 {
		return nil, errNilOperatorKey
	}

	networkConfig, err := proxy.GetNetworkConfig(context.Background())
	if err != nil {
		log.Error("can not get network config from proxy", "error", err)
		return nil, err
	}

	conv, err := pubkeyConverter.NewBech32PubkeyConverter(32, log)
	if err != nil {
		log.Error("can not create converter", "error", err)
		return nil, err
	}

	operatorAddress, err := interactors.NewWallet().GetAddressFromPrivateKey(operatorKey)
	if err != nil {
		log.Error("unable to load the address from the operator key", "error", err)
		return nil, err
	}

	networkManager := &NetworkManager{
		NetworkConfig: networkConfig,
		cfg:           cfg,
		proxy:         proxy,
		conv:          conv,
		interactor:    ti,
		operatorKey:   operatorKey,
		operator:      operatorAddress.AddressAsBech32String(),
		nonces:        newNonceTracker(),
		pollInterval:  txPollInterval,
		txTimeout:     txTimeout,
	}

	return networkManager, nil
}

// OperatorAddress - the wallet holding the lottery pool
func (nm *NetworkManager) OperatorAddress() string {
	return nm.operator
}

// Transfer pays amount from the operator wallet to the given address
func (nm *NetworkManager) Transfer(to string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return errInvalidAmount
	}

	hash, err := nm.SendTransaction(nm.operatorKey, to, amount, nm.cfg.Network.TransferGasLimit, "")
	if err != nil {
		return xerrors.Errorf("transfer to %s: %w", to, err)
	}

	log.Info("transfer sent", "to", to, "amount", amount.String(), "hash", hash)

	return nil
}

// SendTransaction signs and sends a transaction from the wallet of privateKey
func (nm *NetworkManager) SendTransaction(privateKey []byte, to string, amount *big.Int, gasLimit uint64, function string) (string, error) {
	if _, err := nm.conv.Decode(to); err != nil {
		log.Error("invalid receiver address", "address", to, "error", err)
		return "", err
	}

	senderAddress, err := interactors.NewWallet().GetAddressFromPrivateKey(privateKey)
	if err != nil {
		log.Error("unable to load the address from the private key", "error", err)
		return "", err
	}

	txArgs, err := nm.proxy.GetDefaultTransactionArguments(context.Background(), senderAddress, nm.NetworkConfig)
	if err != nil {
		log.Error("unable to prepare the transaction creation arguments", "error", err)
		return "", err
	}

	sender := senderAddress.AddressAsBech32String()
	txArgs.Nonce = nm.nonces.take(sender, txArgs.Nonce)
	txArgs.GasLimit = gasLimit
	txArgs.RcvAddr = to
	txArgs.Value = amount.String()
	if function != "" {
		txArgs.Data = []byte(function)
	}

	tx, err := nm.interactor.ApplySignatureAndGenerateTx(privateKey, txArgs)
	if err != nil {
		nm.nonces.release(sender, txArgs.Nonce)
		log.Error("unable to sign transaction", "error", err)
		return "", err
	}

	hash, err := nm.interactor.SendTransaction(context.Background(), tx)
	if err != nil {
		nm.nonces.release(sender, txArgs.Nonce)
		log.Error("unable to send transaction", "sender", sender, "nonce", txArgs.Nonce, "error", err)
		return "", err
	}

	return hash, nil
}

// EstimateGasLimit - the gas limit of a transfer carrying function as data:
// at least baseGasLimit, and enough for the data bytes on top of the network
// minimum
func (nm *NetworkManager) EstimateGasLimit(baseGasLimit uint64, function string) uint64 {
	gasLimit := nm.NetworkConfig.MinGasLimit + nm.NetworkConfig.GasPerDataByte*uint64(len(function))
	if gasLimit < baseGasLimit {
		gasLimit = baseGasLimit
	}

	return gasLimit
}

// TransactionFee - the most a transaction with gasLimit can cost its sender
func (nm *NetworkManager) TransactionFee(gasLimit uint64) *big.Int {
	fee := new(big.Int).SetUint64(gasLimit)

	return fee.Mul(fee, new(big.Int).SetUint64(nm.NetworkConfig.MinGasPrice))
}

// WaitForTransaction - polls the proxy until the transaction with hash is
// executed. It returns nil only for a successful execution.
func (nm *NetworkManager) WaitForTransaction(hash string) error {
	deadline := time.Now().Add(nm.txTimeout)
	for {
		status, err := nm.proxy.GetTransactionStatus(context.Background(), hash)
		if err != nil {
			log.Debug("can not get transaction status", "hash", hash, "error", err)
		}

		switch status {
		case txStatusSuccess, txStatusExecuted:
			return nil
		case txStatusFail, txStatusInvalid:
			log.Warn("transaction failed", "hash", hash, "status", status)
			return xerrors.Errorf("%s: %w", hash, errTransactionFailed)
		}

		if time.Now().After(deadline) {
			log.Warn("transaction still pending", "hash", hash, "status", status)
			return xerrors.Errorf("%s: %w", hash, errTransactionTimeout)
		}
		time.Sleep(nm.pollInterval)
	}
}

// GetBalance - returns the eGLD balance of address in the smallest unit
func (nm *NetworkManager) GetBalance(address string) (*big.Int, error) {
	account, err := nm.getAccount(address)
	if err != nil {
		return nil, err
	}

	balance, ok := big.NewInt(0).SetString(account.Balance, 10)
	if !ok {
		log.Error("getBalance - invalid balance", "address", address, "balance", account.Balance)
		return nil, errInvalidBalance
	}

	return balance, nil
}

func (nm *NetworkManager) getAccount(address string) (*sdkData.Account, error) {
	pubkey, err := nm.conv.Decode(address)
	if err != nil {
		log.Error("getAccount - Decode", "address", address, "error", err)
		return nil, err
	}

	account, err := nm.proxy.GetAccount(context.Background(), sdkData.NewAddressFromBytes(pubkey))
	if err != nil {
		log.Error("getAccount - GetAccount", "address", address, "error", err)
		return nil, err
	}

	return account, nil
}

// Seed returns the hash of the latest hyperblock as a number. Block hashes
// can be influenced by the block proposer, which the operator accepts when
// enabling automatic settlement.
func (nm *NetworkManager) Seed() (*big.Int, error) {
	nonce, err := nm.proxy.GetLatestHyperBlockNonce(context.Background())
	if err != nil {
		log.Error("can not get latest hyperblock nonce", "error", err)
		return nil, err
	}

	block, err := nm.proxy.GetHyperBlockByNonce(context.Background(), nonce)
	if err != nil {
		log.Error("can not get hyperblock", "nonce", nonce, "error", err)
		return nil, err
	}

	seed, err := seedFromBlockHash(block.Hash)
	if err != nil {
		return nil, xerrors.Errorf("hyperblock %d: %w", nonce, err)
	}

	log.Debug("seed from hyperblock", "nonce", nonce, "hash", block.Hash)

	return seed, nil
}

func seedFromBlockHash(hash string) (*big.Int, error) {
	if hash == "" {
		return nil, errEmptyBlockHash
	}

	b, err := hex.DecodeString(hash)
	if err != nil {
		return nil, err
	}

	return big.NewInt(0).SetBytes(b), nil
}
