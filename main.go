package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/DrDelphi/EsdtLotteryBot/bot"
	"github.com/DrDelphi/EsdtLotteryBot/config"
	"github.com/DrDelphi/EsdtLotteryBot/network"
	"github.com/DrDelphi/EsdtLotteryBot/storage"
	"github.com/DrDelphi/EsdtLotteryBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	configFile = cli.StringFlag{
		Name:  "config",
		Usage: "path to the configuration file (.json or .toml)",
		Value: utils.DefaultConfigPath,
	}
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "logger level(s), e.g. *:INFO or lottery:DEBUG,bot:INFO",
		Value: "*:INFO",
	}
	dbPath = cli.StringFlag{
		Name:  "db",
		Usage: "path to the lottery database, overrides the configuration",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "EsdtLotteryBot"
	app.Usage = "Telegram bot running an eGLD ticketed lottery"
	app.Flags = []cli.Flag{configFile, logLevel, dbPath}
	app.Action = startLottery

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startLottery(ctx *cli.Context) error {
	err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name))
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig(ctx.GlobalString(configFile.Name))
	if err != nil {
		return err
	}
	if path := ctx.GlobalString(dbPath.Name); path != "" {
		cfg.Storage.Path = path
	}

	operatorKey := utils.GetPrivateKeyFromSeed(cfg.Seedphrase, utils.OperatorWalletIndex)
	nm, err := network.NewNetworkManager(cfg, operatorKey)
	if err != nil {
		return err
	}
	log.Info("operator wallet", "address", nm.OperatorAddress())

	store, err := storage.NewStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	game, err := bot.NewGame(cfg, nm, store, utils.DefaultLotteryKey)
	if err != nil {
		return err
	}

	tgBot, err := bot.NewBot(cfg, nm, game)
	if err != nil {
		return err
	}
	tgBot.StartTasks()
	log.Info("lottery bot started", "round", game.Engine().Round())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutting down")

	return nil
}
