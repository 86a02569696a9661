package bot

import (
	"github.com/DrDelphi/EsdtLotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateMessageReceived(message *tgbotapi.Message) {
	user := b.getOrCreateUser(message.From)
	name := utils.FormatTgUser(message.From)
	log.Info("private message received", "message", message.Text, "user", name)

	switch message.Text {
	case menuAbout:
		msg := tgbotapi.NewMessage(user.ID, aboutMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		return
	case menuMainHelp:
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err := b.tgBot.Send(msg)
		if err != nil {
			log.Error("unable to send message", "message", helpMessage, "error", err)
		}
		return
	case menuGameInfo:
		b.sendGameInfo(user)
		return
	case menuBalance:
		b.sendBalance(user)
		return
	case menuBuyTicket:
		go b.buyTickets(user, b.ticketCost(), 1)
		return
	case menuBuy2:
		go b.buyTickets(user, b.ticketCost(), 2)
		return
	case menuBuy3:
		go b.buyTickets(user, b.ticketCost(), 3)
		return
	case menuBuy5:
		go b.buyTickets(user, b.ticketCost(), 5)
		return
	case menuMyTickets:
		b.sendMyTickets(user)
		return
	case menuStatistics:
		b.sendStatistics(user)
		return
	}
}
