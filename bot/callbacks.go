package bot

import (
	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/DrDelphi/EsdtLotteryBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const (
	callbackPem         = "PEM"
	callbackRefreshInfo = "INFO"
)

func (b *Bot) callbackQueryReceived(callback *tgbotapi.CallbackQuery) {
	b.tgBot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, ""))
	user := b.getOrCreateUser(callback.From)
	log.Info("callback received", "callback", callback.Data, "user", utils.FormatTgUser(callback.From))

	switch callback.Data {
	case callbackPem:
		b.sendPemFile(user)
	case callbackRefreshInfo:
		if callback.Message == nil {
			return
		}
		info := b.game.Engine().Info()
		edit := tgbotapi.NewEditMessageText(user.ID, callback.Message.MessageID,
			gameInfoText(info, b.game.Engine().TicketsOf(user.Wallet)))
		edit.ParseMode = tgbotapi.ModeMarkdown
		edit.ReplyMarkup = refreshInfoKeyboard()
		b.tgBot.Send(edit)
	}
}

// sendPemFile uploads the user's wallet key so they can import it elsewhere
func (b *Bot) sendPemFile(user *data.User) {
	buf, err := utils.PemFromPrivateKey(b.privateKey(user))
	if err != nil {
		log.Warn("can not build PEM file", "wallet", user.Wallet, "error", err)
		return
	}

	doc := tgbotapi.NewDocumentUpload(user.ID, tgbotapi.FileBytes{Name: user.Wallet + ".pem", Bytes: buf})
	_, err = b.tgBot.Send(doc)
	if err != nil {
		log.Warn("can not send PEM file", "wallet", user.Wallet, "error", err)
	}
}

func refreshInfoKeyboard() *tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", callbackRefreshInfo),
	))

	return &keyboard
}
