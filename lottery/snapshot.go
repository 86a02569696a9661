package lottery

import (
	"math/big"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"golang.org/x/xerrors"
)

// Snapshot exports the persisted state of the lottery
func (e *Engine) Snapshot() *data.Snapshot {
	e.mut.Lock()
	defer e.mut.Unlock()

	return &data.Snapshot{
		Entrants:         e.registry.Entrants(),
		TicketCost:       e.cfg.TicketCost.String(),
		TicketsAvailable: e.cfg.MaxTickets - e.registry.Len(),
		MaxTickets:       e.cfg.MaxTickets,
		Operator:         e.cfg.Operator,
		Round:            e.round,
		Stats: data.Stats{
			RoundsSettled: e.stats.roundsSettled,
			TicketsSold:   e.stats.ticketsSold,
			TotalPaid:     e.stats.totalPaid.String(),
		},
	}
}

// Restore rebuilds a lottery from a snapshot. The pool is recomputed from the
// number of entrants, one ticket cost each.
func Restore(s *data.Snapshot, ledger Ledger) (*Engine, error) {
	if s == nil {
		return nil, errInvalidSnapshot
	}

	ticketCost, ok := big.NewInt(0).SetString(s.TicketCost, 10)
	if !ok {
		return nil, xerrors.Errorf("ticket cost %q: %w", s.TicketCost, errInvalidSnapshot)
	}

	e, err := NewEngine(Config{TicketCost: ticketCost, MaxTickets: s.MaxTickets, Operator: s.Operator}, ledger)
	if err != nil {
		return nil, xerrors.Errorf("invalid snapshot config: %w", err)
	}

	sold := uint64(len(s.Entrants))
	if sold > s.MaxTickets || s.TicketsAvailable != s.MaxTickets-sold {
		return nil, xerrors.Errorf("%d entrants and %d tickets available out of %d: %w",
			sold, s.TicketsAvailable, s.MaxTickets, errInvalidSnapshot)
	}

	for _, entrant := range s.Entrants {
		if _, err = e.registry.Append(entrant); err != nil {
			return nil, err
		}
		e.escrow.Hold(entrant, e.cfg.TicketCost)
	}

	if s.Round > 0 {
		e.round = s.Round
	}
	e.stats.roundsSettled = s.Stats.RoundsSettled
	e.stats.ticketsSold = s.Stats.TicketsSold
	if s.Stats.TotalPaid != "" {
		totalPaid, ok := big.NewInt(0).SetString(s.Stats.TotalPaid, 10)
		if !ok {
			return nil, xerrors.Errorf("total paid %q: %w", s.Stats.TotalPaid, errInvalidSnapshot)
		}
		e.stats.totalPaid = totalPaid
	}

	return e, nil
}
