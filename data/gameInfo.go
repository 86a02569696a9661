package data

import "math/big"

type GameInfo struct {
	Round            uint64
	TicketCost       *big.Int
	MaxTickets       uint64
	TicketsSold      uint64
	TicketsAvailable uint64
	Pool             *big.Int
	Phase            string
	Operator         string
	Stats            struct {
		RoundsSettled uint64
		TicketsSold   uint64
		TotalPaid     *big.Int
	}
}
