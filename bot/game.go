package bot

import (
	"errors"
	"math/big"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/DrDelphi/EsdtLotteryBot/lottery"
	"github.com/DrDelphi/EsdtLotteryBot/storage"
	"github.com/DrDelphi/EsdtLotteryBot/utils"
	"golang.org/x/xerrors"
)

const buyTicketFunction = "buy_ticket"

// ErrInsufficientBalance - the wallet can not pay the ticket and the fee of
// the payment transaction
var ErrInsufficientBalance = errors.New("insufficient balance")

// Game binds the lottery engine to the chain and to the snapshot store. Every
// committed engine call is followed by a snapshot save.
type Game struct {
	engine   *lottery.Engine
	chain    ChainHandler
	store    SnapshotStorer
	key      string
	gasLimit uint64
}

// NewGame - restores the lottery saved under key or starts a new one from
// the configuration. A saved lottery keeps its own ticket price and size.
func NewGame(cfg *data.AppConfig, chain ChainHandler, store SnapshotStorer, key string) (*Game, error) {
	g := &Game{
		chain:    chain,
		store:    store,
		key:      key,
		gasLimit: cfg.Network.TransferGasLimit,
	}

	snapshot, err := store.Load(key)
	switch {
	case err == nil:
		g.engine, err = lottery.Restore(snapshot, chain)
		if err != nil {
			return nil, xerrors.Errorf("restoring lottery %s: %w", key, err)
		}
		log.Info("lottery restored", "key", key, "round", snapshot.Round, "entrants", len(snapshot.Entrants))
		if snapshot.TicketCost != configTicketCost(cfg) || snapshot.MaxTickets != cfg.Lottery.MaxTickets {
			log.Warn("saved lottery differs from configuration, keeping saved parameters",
				"ticket cost", snapshot.TicketCost, "max tickets", snapshot.MaxTickets)
		}
	case err == storage.ErrSnapshotNotFound:
		ticketCost, err := utils.ParseAmount(cfg.Lottery.TicketPrice, utils.EgldDecimals)
		if err != nil {
			return nil, err
		}
		g.engine, err = lottery.NewEngine(lottery.Config{
			TicketCost: ticketCost,
			MaxTickets: cfg.Lottery.MaxTickets,
			Operator:   chain.OperatorAddress(),
		}, chain)
		if err != nil {
			return nil, err
		}
		log.Info("new lottery created", "key", key, "ticket cost", ticketCost.String(), "max tickets", cfg.Lottery.MaxTickets)
		g.persist()
	default:
		return nil, err
	}

	return g, nil
}

func configTicketCost(cfg *data.AppConfig) string {
	cost, err := utils.ParseAmount(cfg.Lottery.TicketPrice, utils.EgldDecimals)
	if err != nil {
		return ""
	}

	return cost.String()
}

func (g *Game) Engine() *lottery.Engine {
	return g.engine
}

func (g *Game) paymentGasLimit() uint64 {
	return g.chain.EstimateGasLimit(g.gasLimit, buyTicketFunction)
}

// PaymentFee - the most the payment transaction of one ticket costs in fees
func (g *Game) PaymentFee() *big.Int {
	return g.chain.TransactionFee(g.paymentGasLimit())
}

// RequiredBalance - what a wallet needs to pay count tickets of offered each,
// fees included
func (g *Game) RequiredBalance(offered *big.Int, count int) *big.Int {
	required := new(big.Int).Add(offered, g.PaymentFee())

	return required.Mul(required, big.NewInt(int64(count)))
}

// BuyTicket pays offered from the user's wallet into the operator wallet and
// enters the user in the current round once the payment is executed on chain.
// A payment the engine rejects is sent back to the user.
func (g *Game) BuyTicket(user *data.User, privateKey []byte, offered *big.Int) (uint64, error) {
	if g.engine.Phase() != lottery.PhaseOpen {
		return 0, lottery.ErrSoldOut
	}
	if offered == nil || offered.Cmp(g.engine.Config().TicketCost) < 0 {
		return 0, lottery.ErrInsufficientPayment
	}

	balance, err := g.chain.GetBalance(user.Wallet)
	if err != nil {
		return 0, err
	}
	if balance.Cmp(g.RequiredBalance(offered, 1)) < 0 {
		return 0, ErrInsufficientBalance
	}

	hash, err := g.chain.SendTransaction(privateKey, g.chain.OperatorAddress(), offered, g.paymentGasLimit(), buyTicketFunction)
	if err != nil {
		return 0, err
	}
	log.Debug("ticket payment sent", "user", user.ID, "wallet", user.Wallet, "hash", hash)

	err = g.chain.WaitForTransaction(hash)
	if err != nil {
		log.Error("ticket payment not confirmed, no ticket recorded", "wallet", user.Wallet,
			"amount", offered.String(), "hash", hash, "error", err)
		return 0, xerrors.Errorf("ticket payment %s: %w", hash, err)
	}

	index, err := g.engine.BuyTicket(user.Wallet, offered)
	if err != nil {
		bounceErr := g.chain.Transfer(user.Wallet, offered)
		if bounceErr != nil {
			log.Error("can not bounce rejected ticket payment", "wallet", user.Wallet,
				"amount", offered.String(), "error", bounceErr)
		}
		return 0, err
	}

	g.persist()

	return index, nil
}

// EndGame ends the round with a seed picked by caller
func (g *Game) EndGame(caller string, seed *big.Int) (string, *big.Int, error) {
	winner, payout, err := g.engine.EndGame(caller, seed)
	if err != nil {
		return "", nil, err
	}

	g.persist()

	return winner, payout, nil
}

// Settle ends a full round on behalf of the operator with a seed from the chain
func (g *Game) Settle() (string, *big.Int, error) {
	winner, payout, err := g.engine.Settle(g.chain.OperatorAddress(), g.chain)
	if err != nil {
		return "", nil, err
	}

	g.persist()

	return winner, payout, nil
}

// Donate - the lottery accepts value only through ticket purchases
func (g *Game) Donate(caller string, amount *big.Int) error {
	return g.engine.Receive(caller, amount)
}

func (g *Game) persist() {
	err := g.store.Save(g.key, g.engine.Snapshot())
	if err != nil {
		log.Error("can not save lottery snapshot", "key", g.key, "error", err)
	}
}
