package data

// AppConfig holds the application configuration read from config.json (or config.toml)
type AppConfig struct {
	Bot struct {
		Token   string `json:"token" toml:"token"`
		Owner   int64  `json:"owner" toml:"owner"`
		Group   string `json:"group" toml:"group"`
		GroupID int64  `json:"groupID" toml:"groupID"`
	} `json:"bot" toml:"bot"`
	Seedphrase string `json:"seed" toml:"seed"`
	Network    struct {
		Proxy            string `json:"proxy" toml:"proxy"`
		ExplorerAccount  string `json:"explorerAccount" toml:"explorerAccount"`
		TransferGasLimit uint64 `json:"transferGasLimit" toml:"transferGasLimit"`
	} `json:"network" toml:"network"`
	Lottery struct {
		TicketPrice    string `json:"ticketPrice" toml:"ticketPrice"`
		MaxTickets     uint64 `json:"maxTickets" toml:"maxTickets"`
		AutoSettle     bool   `json:"autoSettle" toml:"autoSettle"`
		SettleInterval int64  `json:"settleInterval" toml:"settleInterval"`
	} `json:"lottery" toml:"lottery"`
	Storage struct {
		Path string `json:"path" toml:"path"`
	} `json:"storage" toml:"storage"`
}
