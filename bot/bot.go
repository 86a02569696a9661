package bot

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/DrDelphi/EsdtLotteryBot/config"
	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/DrDelphi/EsdtLotteryBot/lottery"
	"github.com/DrDelphi/EsdtLotteryBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/sasha-s/go-deadlock"
)

var log = logger.GetOrCreate("bot")

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot *tgbotapi.BotAPI
	cfg   *data.AppConfig
	chain ChainHandler
	game  *Game

	mutUsers deadlock.RWMutex
	users    map[int64]*data.User
	tgUsers  map[int64]*data.Telegram
}

// NewBot - creates a new Bot object
func NewBot(cfg *data.AppConfig, chain ChainHandler, game *Game) (*Bot, error) {
	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	telegramBot := &Bot{
		tgBot:   tgBot,
		cfg:     cfg,
		chain:   chain,
		game:    game,
		users:   make(map[int64]*data.User),
		tgUsers: make(map[int64]*data.Telegram),
	}

	helpMessage = strings.ReplaceAll(helpMessage, "EsdtLottery", cfg.Bot.Group)

	return telegramBot, nil
}

// StartTasks - starts bot's tasks
func (b *Bot) StartTasks() {
	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates, err := b.tgBot.GetUpdatesChan(u)
		if err != nil {
			log.Error("can not get Telegram bot updates", "error", err)
			panic(err)
		}
		updates.Clear()
		for update := range updates {
			if update.Message != nil {
				if update.Message.Chat.IsPrivate() {
					// private
					if update.Message.IsCommand() {
						b.privateCommandReceived(update.Message)
						continue
					}
					b.privateMessageReceived(update.Message)
				} else {
					// public
					if b.cfg.Bot.GroupID == 0 && update.Message.Chat.UserName == b.cfg.Bot.Group {
						b.cfg.Bot.GroupID = update.Message.Chat.ID
						_ = config.Save(b.cfg)
					}
					if update.Message.IsCommand() {
						b.tgBot.Send(tgbotapi.DeleteMessageConfig{ChatID: update.Message.Chat.ID, MessageID: update.Message.MessageID})
						continue
					}
				}
			}
			if update.CallbackQuery != nil {
				b.callbackQueryReceived(update.CallbackQuery)
			}
		}
	}()

	if !b.cfg.Lottery.AutoSettle {
		return
	}

	go func() {
		interval := time.Duration(b.cfg.Lottery.SettleInterval) * time.Second
		for {
			time.Sleep(interval)
			engine := b.game.Engine()
			if engine.Phase() != lottery.PhaseSettling {
				continue
			}

			round := engine.Round()
			winner, payout, err := b.game.Settle()
			if err != nil {
				b.reportError(fmt.Sprintf("can not settle round #%v: %s", round, err))
				continue
			}
			b.announceWinner(round, winner, payout)
		}
	}()
}

func (b *Bot) reportError(text string) {
	log.Warn("reporting error", "error", text)
	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tgBot.Send(msg)
}

func (b *Bot) sendToGroup(text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(b.cfg.Bot.GroupID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message to group", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) sendMessage(userID int64, text string) (tgbotapi.Message, error) {
	b.mutUsers.RLock()
	tgUser, ok := b.tgUsers[userID]
	b.mutUsers.RUnlock()
	if !ok {
		return tgbotapi.Message{}, errors.New("user not found")
	}

	log.Debug("sent message", "user", utils.FormatDbTgUser(tgUser), "message", text)
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message", "user", utils.FormatDbTgUser(tgUser), "message", text, "error", err.Error())
	}

	return res, err
}

// callerIdentity maps a telegram user to the identity the engine sees: the
// bot owner acts as the lottery operator, everybody else as their wallet
func (b *Bot) callerIdentity(user *data.User) string {
	if user.ID == b.cfg.Bot.Owner {
		return b.chain.OperatorAddress()
	}

	return user.Wallet
}

func (b *Bot) privateKey(user *data.User) []byte {
	return utils.GetPrivateKeyFromSeed(b.cfg.Seedphrase, user.ID)
}

func (b *Bot) sendGameInfo(user *data.User) (tgbotapi.Message, error) {
	info := b.game.Engine().Info()
	if user == nil {
		return b.sendToGroup(gameInfoText(info, nil))
	}

	msg := tgbotapi.NewMessage(user.ID, gameInfoText(info, b.game.Engine().TicketsOf(user.Wallet)))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = refreshInfoKeyboard()

	return b.tgBot.Send(msg)
}

// buyTickets buys count tickets paying offered for each. It blocks until the
// payments are executed, callers run it on its own goroutine.
func (b *Bot) buyTickets(user *data.User, offered *big.Int, count int) {
	balance, err := b.chain.GetBalance(user.Wallet)
	if err != nil {
		b.sendMessage(user.ID, "❗️ Network error. Please contact an administrator ("+err.Error()+")")
		return
	}
	if balance.Cmp(b.game.RequiredBalance(offered, count)) < 0 {
		fees := new(big.Int).Mul(b.game.PaymentFee(), big.NewInt(int64(count)))
		tickets := new(big.Int).Mul(offered, big.NewInt(int64(count)))
		b.sendMessage(user.ID, fmt.Sprintf("⛔️ Not enough balance. You have %s eGLD and you need %s for tickets + %s for fees",
			utils.NiceAmount(balance), utils.NiceAmount(tickets), utils.NiceAmount(fees)))
		return
	}

	b.sendMessage(user.ID, fmt.Sprintf("⏳ Buying %v ticket(s), waiting for the network to confirm each payment", count))
	for i := 0; i < count; i++ {
		if !b.buyTicket(user, offered) {
			return
		}
	}
}

func (b *Bot) buyTicket(user *data.User, offered *big.Int) bool {
	index, err := b.game.BuyTicket(user, b.privateKey(user), offered)
	if err != nil {
		b.sendMessage(user.ID, errorText(err))
		if !lottery.IsValidationError(err) && !errors.Is(err, ErrInsufficientBalance) {
			b.reportError(fmt.Sprintf("ticket purchase by %s failed: %s", user.Wallet, err))
		}
		return false
	}

	info := b.game.Engine().Info()
	round := info.Round
	refund := new(big.Int).Sub(offered, info.TicketCost)
	b.sendMessage(user.ID, ticketBoughtText(round, index, refund))

	if info.TicketsAvailable == 0 {
		b.sendToGroup(fmt.Sprintf("🎟 `Round #%v sold out!` The winner will be drawn soon", round))
	}

	return true
}

func (b *Bot) ticketCost() *big.Int {
	return b.game.Engine().Config().TicketCost
}

func (b *Bot) endGame(user *data.User, seed *big.Int) {
	round := b.game.Engine().Round()
	winner, payout, err := b.game.EndGame(b.callerIdentity(user), seed)
	if err != nil {
		b.sendMessage(user.ID, errorText(err))
		return
	}

	b.announceWinner(round, winner, payout)
}

func (b *Bot) announceWinner(round uint64, winner string, payout *big.Int) {
	name := ""
	user := b.getUserByAddress(winner)
	if user != nil {
		b.mutUsers.RLock()
		tgUser := b.tgUsers[user.ID]
		b.mutUsers.RUnlock()
		if tgUser != nil {
			name = utils.FormatDbTgUser(tgUser)
		}
		b.sendMessage(user.ID, fmt.Sprintf("🤑 You won %s eGLD in round #%v!", utils.NiceAmount(payout), round))
	}

	b.sendToGroup(winnerText(round, winner, name, payout))
}

func (b *Bot) sendMyTickets(user *data.User) {
	engine := b.game.Engine()
	b.sendMessage(user.ID, myTicketsText(engine.Round(), engine.TicketsOf(user.Wallet)))
}

func (b *Bot) sendStatistics(user *data.User) {
	b.sendMessage(user.ID, statisticsText(b.game.Engine().Info()))
}

func (b *Bot) sendBalance(user *data.User) {
	balance, err := b.chain.GetBalance(user.Wallet)
	if err != nil {
		b.reportError("can not get wallet balance")
		return
	}

	text := fmt.Sprintf("`Wallet:` [%s](%s%s)\n`Balance:` %s eGLD",
		utils.ShortenAddress(user.Wallet), b.cfg.Network.ExplorerAccount, user.Wallet, utils.NiceAmount(balance))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔑 PEM file", callbackPem),
	))
	msg := tgbotapi.NewMessage(user.ID, text)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	b.tgBot.Send(msg)
}

func (b *Bot) getOrCreateUser(tgUser *tgbotapi.User) *data.User {
	id := int64(tgUser.ID)

	b.mutUsers.Lock()
	defer b.mutUsers.Unlock()

	user, ok := b.users[id]
	if !ok {
		user = &data.User{
			ID:     id,
			Wallet: utils.GetAddressFromPrivateKey(utils.GetPrivateKeyFromSeed(b.cfg.Seedphrase, id)),
		}
		b.users[id] = user
	}

	tg, ok := b.tgUsers[id]
	if !ok || tg.UserName != tgUser.UserName || tg.FirstName != tgUser.FirstName || tg.LastName != tgUser.LastName {
		b.tgUsers[id] = &data.Telegram{
			ID:        id,
			UserName:  tgUser.UserName,
			FirstName: tgUser.FirstName,
			LastName:  tgUser.LastName,
		}
	}

	return user
}

func (b *Bot) getUserByAddress(address string) *data.User {
	b.mutUsers.RLock()
	defer b.mutUsers.RUnlock()

	for _, user := range b.users {
		if user.Wallet == address {
			return user
		}
	}

	return nil
}
