package bot

import (
	"math/big"
	"strings"

	"github.com/DrDelphi/EsdtLotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateCommandReceived(message *tgbotapi.Message) {
	cmd := message.Command()
	args := strings.TrimSpace(message.CommandArguments())
	name := utils.FormatTgUser(message.From)

	user := b.getOrCreateUser(message.From)
	log.Info("private command received", "command", cmd, "args", args, "user", name)

	switch cmd {
	case "start":
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		b.mainMenu(user)
	case "info":
		b.sendGameInfo(user)
	case "buy":
		offered := b.ticketCost()
		if args != "" {
			amount, err := utils.ParseAmount(args, utils.EgldDecimals)
			if err != nil {
				b.sendMessage(user.ID, "⛔️ Invalid amount. Usage: /buy `1.5`")
				return
			}
			offered = amount
		}
		go b.buyTickets(user, offered, 1)
	case "endgame":
		seed, ok := big.NewInt(0).SetString(args, 10)
		if !ok {
			b.sendMessage(user.ID, "⛔️ Usage: /endgame `random number`")
			return
		}
		b.endGame(user, seed)
	case "donate":
		amount, err := utils.ParseAmount(args, utils.EgldDecimals)
		if err != nil {
			amount = big.NewInt(0)
		}
		err = b.game.Donate(b.callerIdentity(user), amount)
		if err != nil {
			b.sendMessage(user.ID, errorText(err))
		}
	}
}
