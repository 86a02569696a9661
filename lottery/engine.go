package lottery

import (
	"math/big"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/sasha-s/go-deadlock"
)

var log = logger.GetOrCreate("lottery")

// Phase is derived from the number of tickets sold, it is never stored
type Phase int

const (
	PhaseOpen Phase = iota
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "Open"
	case PhaseSettling:
		return "Settling"
	default:
		return "Unknown"
	}
}

// Config - holds the immutable parameters of a lottery
type Config struct {
	TicketCost *big.Int
	MaxTickets uint64
	Operator   string
}

func (c Config) validate() error {
	if c.TicketCost == nil || c.TicketCost.Sign() <= 0 {
		return errInvalidTicketCost
	}
	if c.MaxTickets == 0 {
		return errInvalidMaxTickets
	}
	if c.Operator == "" {
		return errEmptyOperator
	}

	return nil
}

// Engine runs a single lottery: it sells tickets until the round is full and
// pays the whole pool to one winner when the operator ends the game. Every
// operation is one critical section, concurrent callers never observe a
// half-applied call.
type Engine struct {
	mut deadlock.Mutex

	cfg      Config
	registry *Registry
	escrow   *Escrow

	round uint64
	stats struct {
		roundsSettled uint64
		ticketsSold   uint64
		totalPaid     *big.Int
	}
}

// NewEngine - creates a lottery in the Open phase with an empty first round
func NewEngine(cfg Config, ledger Ledger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, errNilLedger
	}

	e := &Engine{
		cfg: Config{
			TicketCost: new(big.Int).Set(cfg.TicketCost),
			MaxTickets: cfg.MaxTickets,
			Operator:   cfg.Operator,
		},
		registry: NewRegistry(cfg.MaxTickets),
		escrow:   NewEscrow(ledger),
		round:    1,
	}
	e.stats.totalPaid = big.NewInt(0)

	return e, nil
}

// BuyTicket sells the next ticket of the round to caller, who paid offered.
// Anything above the ticket cost is refunded before the ticket is recorded;
// if that refund fails nothing is recorded and ErrTransferFailed is returned.
func (e *Engine) BuyTicket(caller string, offered *big.Int) (uint64, error) {
	e.mut.Lock()
	defer e.mut.Unlock()

	if e.phase() != PhaseOpen {
		return 0, ErrSoldOut
	}
	if offered == nil || offered.Cmp(e.cfg.TicketCost) < 0 {
		return 0, ErrInsufficientPayment
	}

	extra := new(big.Int).Sub(offered, e.cfg.TicketCost)
	err := e.escrow.Refund(caller, extra)
	if err != nil {
		return 0, transferFailed(err)
	}

	index, err := e.registry.Append(caller)
	if err != nil {
		// unreachable while the phase check above holds
		return 0, ErrSoldOut
	}
	e.escrow.Hold(caller, e.cfg.TicketCost)
	e.stats.ticketsSold++

	log.Debug("ticket bought", "round", e.round, "player", caller, "index", index,
		"refund", extra.String(), "pool", e.escrow.Total().String())
	if e.phase() == PhaseSettling {
		log.Info("round sold out", "round", e.round, "tickets", e.registry.Len())
	}

	return index, nil
}

// EndGame draws the winner of a full round and pays them the whole pool.
//
// The winner is entrants[seed mod MaxTickets]. The draw is only fair if seed
// is unpredictable and independent of the entrants; the engine trusts the
// caller (the operator or the RandomnessSource behind Settle) on this.
//
// The round is reset only after the ledger confirmed the payout; on
// ErrTransferFailed the round stays full and EndGame can be called again.
func (e *Engine) EndGame(caller string, seed *big.Int) (string, *big.Int, error) {
	e.mut.Lock()
	defer e.mut.Unlock()

	if caller != e.cfg.Operator {
		return "", nil, ErrNotAuthorized
	}
	if e.phase() != PhaseSettling {
		return "", nil, ErrRoundNotComplete
	}
	if seed == nil || seed.Sign() < 0 {
		return "", nil, ErrInvalidSeed
	}

	winnerIndex := new(big.Int).Mod(seed, new(big.Int).SetUint64(e.cfg.MaxTickets)).Uint64()
	winner, err := e.registry.At(winnerIndex)
	if err != nil {
		return "", nil, err
	}

	payout := e.escrow.Total()
	err = e.escrow.Release(winner, payout)
	if err != nil {
		return "", nil, transferFailed(err)
	}

	log.Info("round settled", "round", e.round, "winner", winner, "index", winnerIndex, "payout", payout.String())

	e.registry.Clear()
	e.escrow.Reset()
	e.stats.roundsSettled++
	e.stats.totalPaid.Add(e.stats.totalPaid, payout)
	e.round++

	return winner, payout, nil
}

// Settle ends the game with a seed taken from src
func (e *Engine) Settle(caller string, src RandomnessSource) (string, *big.Int, error) {
	if src == nil {
		return "", nil, errNilRandomness
	}

	seed, err := src.Seed()
	if err != nil {
		return "", nil, err
	}

	return e.EndGame(caller, seed)
}

// Receive rejects value sent outside BuyTicket, the lottery takes no donations
func (e *Engine) Receive(caller string, amount *big.Int) error {
	log.Warn("unsolicited transfer rejected", "from", caller, "amount", amount)

	return ErrRejected
}

func (e *Engine) phase() Phase {
	if e.registry.Len() == e.cfg.MaxTickets {
		return PhaseSettling
	}

	return PhaseOpen
}

func (e *Engine) Phase() Phase {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.phase()
}

// Config returns a copy of the lottery parameters
func (e *Engine) Config() Config {
	return Config{
		TicketCost: new(big.Int).Set(e.cfg.TicketCost),
		MaxTickets: e.cfg.MaxTickets,
		Operator:   e.cfg.Operator,
	}
}

func (e *Engine) Pool() *big.Int {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.escrow.Total()
}

func (e *Engine) TicketsSold() uint64 {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.registry.Len()
}

// Entrants returns the entrants of the current round in ticket order
func (e *Engine) Entrants() []string {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.registry.Entrants()
}

// TicketsOf returns the ticket indices identity holds in the current round
func (e *Engine) TicketsOf(identity string) []uint64 {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.registry.IndicesOf(identity)
}

func (e *Engine) Round() uint64 {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.round
}

// Info returns a consistent view of the lottery for display
func (e *Engine) Info() *data.GameInfo {
	e.mut.Lock()
	defer e.mut.Unlock()

	info := &data.GameInfo{
		Round:            e.round,
		TicketCost:       new(big.Int).Set(e.cfg.TicketCost),
		MaxTickets:       e.cfg.MaxTickets,
		TicketsSold:      e.registry.Len(),
		TicketsAvailable: e.cfg.MaxTickets - e.registry.Len(),
		Pool:             e.escrow.Total(),
		Phase:            e.phase().String(),
		Operator:         e.cfg.Operator,
	}
	info.Stats.RoundsSettled = e.stats.roundsSettled
	info.Stats.TicketsSold = e.stats.ticketsSold
	info.Stats.TotalPaid = new(big.Int).Set(e.stats.totalPaid)

	return info
}
