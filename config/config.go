package config

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/DrDelphi/EsdtLotteryBot/data"
	"github.com/DrDelphi/EsdtLotteryBot/utils"
	"golang.org/x/xerrors"
)

var (
	cfgPath string

	errMissingToken      = errors.New("missing bot token")
	errMissingSeedphrase = errors.New("missing seed phrase")
	errMissingProxy      = errors.New("missing network proxy")
	errInvalidMaxTickets = errors.New("max tickets must be positive")
	errInvalidInterval   = errors.New("settle interval must not be negative")
)

// NewConfig - reads the application configuration from the provided path
// and returns an AppConfig struct or an error if something goes wrong.
// Files ending in .toml are decoded as TOML, anything else as JSON.
func NewConfig(configPath string) (*data.AppConfig, error) {
	bytes, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &data.AppConfig{}
	if isToml(configPath) {
		_, err = toml.Decode(string(bytes), cfg)
	} else {
		err = json.Unmarshal(bytes, cfg)
	}
	if err != nil {
		return nil, xerrors.Errorf("decoding %s: %w", configPath, err)
	}

	applyDefaults(cfg)
	err = Validate(cfg)
	if err != nil {
		return nil, err
	}

	cfgPath = configPath

	return cfg, nil
}

// Save - writes the configuration back to the file it was read from
func Save(cfg *data.AppConfig) error {
	if isToml(cfgPath) {
		buf := new(strings.Builder)
		err := toml.NewEncoder(buf).Encode(cfg)
		if err != nil {
			return err
		}

		return ioutil.WriteFile(cfgPath, []byte(buf.String()), 0644)
	}

	bytes, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(cfgPath, bytes, 0644)
}

// Validate - checks the fields the bot can not run without
func Validate(cfg *data.AppConfig) error {
	if cfg.Bot.Token == "" {
		return errMissingToken
	}
	if cfg.Seedphrase == "" {
		return errMissingSeedphrase
	}
	if cfg.Network.Proxy == "" {
		return errMissingProxy
	}
	if cfg.Lottery.MaxTickets == 0 {
		return errInvalidMaxTickets
	}
	if cfg.Lottery.SettleInterval < 0 {
		return errInvalidInterval
	}

	price, err := utils.ParseAmount(cfg.Lottery.TicketPrice, utils.EgldDecimals)
	if err != nil {
		return xerrors.Errorf("ticket price %q: %w", cfg.Lottery.TicketPrice, err)
	}
	if price.Sign() <= 0 {
		return xerrors.Errorf("ticket price %q must be positive", cfg.Lottery.TicketPrice)
	}

	return nil
}

func applyDefaults(cfg *data.AppConfig) {
	if cfg.Network.TransferGasLimit == 0 {
		cfg.Network.TransferGasLimit = utils.DefaultTransferGasLimit
	}
	if cfg.Lottery.SettleInterval == 0 {
		cfg.Lottery.SettleInterval = utils.DefaultSettleInterval
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = utils.DefaultDbPath
	}
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
