package data

// Snapshot is the persisted state of one lottery. Amounts are decimal strings
// expressed in the smallest denomination.
type Snapshot struct {
	Entrants         []string
	TicketCost       string
	TicketsAvailable uint64
	MaxTickets       uint64
	Operator         string
	Round            uint64
	Stats            Stats
}

// Stats holds the all-time counters of a lottery
type Stats struct {
	RoundsSettled uint64
	TicketsSold   uint64
	TotalPaid     string
}
