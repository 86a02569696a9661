package bot

const (
	menuGameInfo   = "ℹ️ Game Info"
	menuStatistics = "📊 Statistics"
	menuBalance    = "💰 Balance"
	menuMyTickets  = "🎫 My Tickets"
	menuBuyTicket  = "🎟 Buy Ticket"
	menuBuy2       = "2️⃣ x 🎟"
	menuBuy3       = "3️⃣ x 🎟"
	menuBuy5       = "5️⃣ x 🎟"
	menuMainHelp   = "📖 Help"
	menuAbout      = "©️ About"

	aboutMessage = "*Made with ❤️ by* [@DrDelphi](https://t.me/DrDelphi)"
)

var (
	helpMessage = "`DISCLAIMER !`\n" +
		"\n" +
		"🔴 All prizes are considered friend gifts.\n" +
		"🟡 This bot is in no way sponsored, endorsed, administered by, or associated with MultiversX.\n" +
		"🟣 Must be 18 years old or older to play!\n" +
		"\n" +
		"`Instructions`\n" +
		"\n" +
		"This is a Lottery Telegram Bot. Every round has a fixed number of tickets and one winner takes the whole prize pool.\n\n" +
		"The bot will generate a wallet for you from which you can buy tickets and where you receive the prizes.\n\n" +
		"When all the tickets of a round are sold the operator draws the winner and a new round starts.\n\n" +
		"`Commands`\n" +
		"/buy `amount` - buy one ticket paying `amount` eGLD, the change is sent back\n" +
		"/info - game info\n" +
		"\n" +
		"You can watch the game's progress on @EsdtLottery\n\n" +
		"🍀 Good luck!"
)
