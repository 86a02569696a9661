package bot

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/DrDelphi/EsdtLotteryBot/lottery"
	"github.com/DrDelphi/EsdtLotteryBot/utils"
)

func gameInfoText(info *data.GameInfo, tickets []uint64) string {
	if info == nil {
		return ""
	}

	text := "`Game Info`\n\n"
	text += fmt.Sprintf("`Game round:` #%v\n", info.Round)
	text += fmt.Sprintf("`Ticket price:` %s eGLD\n", utils.NiceAmount(info.TicketCost))
	text += fmt.Sprintf("`Tickets sold:` %v / %v\n", info.TicketsSold, info.MaxTickets)
	text += fmt.Sprintf("`Tickets available:` %v\n", info.TicketsAvailable)
	text += fmt.Sprintf("`Prize pool:` %s eGLD\n", utils.NiceAmount(info.Pool))
	text += fmt.Sprintf("`Status:` %v\n", info.Phase)

	switch len(tickets) {
	case 0:
	case 1:
		text += fmt.Sprintf("\nYou have `1` ticket (#%v)", tickets[0])
	default:
		text += fmt.Sprintf("\nYou have `%v` tickets (%s)", len(tickets), formatIndices(tickets))
	}

	return text
}

func statisticsText(info *data.GameInfo) string {
	text := "`Statistics`\n\n"
	text += fmt.Sprintf("`Rounds played:` %v\n", info.Stats.RoundsSettled)
	text += fmt.Sprintf("`Tickets sold:` %v\n", info.Stats.TicketsSold)
	text += fmt.Sprintf("`Prizes paid:` %s eGLD", utils.NiceAmount(info.Stats.TotalPaid))

	return text
}

func myTicketsText(round uint64, tickets []uint64) string {
	if len(tickets) == 0 {
		return "🚫 You have no tickets in this round"
	}

	return fmt.Sprintf("🎫 Your tickets in round #%v: %s", round, formatIndices(tickets))
}

func ticketBoughtText(round uint64, index uint64, refund *big.Int) string {
	text := fmt.Sprintf("✅ You bought ticket `#%v` in round #%v", index, round)
	if refund != nil && refund.Sign() > 0 {
		text += fmt.Sprintf("\n💸 %s eGLD were sent back to you", utils.NiceAmount(refund))
	}

	return text
}

func winnerText(round uint64, winner string, name string, payout *big.Int) string {
	if name == "" {
		name = utils.ShortenAddress(winner)
	}
	text := fmt.Sprintf("🎉 `Round #%v is over!`\n\n", round)
	text += fmt.Sprintf("%s won the prize pool of %s eGLD 💰", name, utils.NiceAmount(payout))

	return strings.ReplaceAll(text, "_", "\\_")
}

// errorText turns an engine error into a chat message
func errorText(err error) string {
	if errors.Is(err, ErrInsufficientBalance) {
		return "⛔️ Not enough balance for the ticket and the transaction fee"
	}

	var e *lottery.Error
	if !errors.As(err, &e) {
		return "❗️ Network error. Please contact an administrator (" + err.Error() + ")"
	}

	var text string
	switch e.Code {
	case lottery.CodeNoTicketsAvailable:
		text = "⌛️ No tickets available, please wait for the current round to finish"
	case lottery.CodeInvalidAmount:
		text = "⛔️ The amount is lower than the ticket price"
	case lottery.CodeNotAuthorised:
		text = "⛔️ Only the operator can end the game"
	case lottery.CodeGameIsYetToEnd:
		text = "⌛️ The game is yet to end, there are tickets still available"
	case lottery.CodeNotAllowed:
		text = "⛔️ The lottery does not accept donations"
	case lottery.CodeInvalidRandomNumber:
		text = "⛔️ The random number must be a natural number"
	case lottery.CodeTransferFailed:
		text = "❗️ Transfer failed, nothing was changed. Please try again later"
	default:
		text = "❗️ Unexpected error"
	}

	return text + fmt.Sprintf(" (`%s`)", e.Code)
}

func formatIndices(indices []uint64) string {
	parts := make([]string, 0, len(indices))
	for _, index := range indices {
		parts = append(parts, fmt.Sprintf("#%v", index))
	}

	return strings.Join(parts, ", ")
}
