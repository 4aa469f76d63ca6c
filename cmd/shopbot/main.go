package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vi13x/shop-lite-cli/bot"
	"github.com/vi13x/shop-lite-cli/internal/config"
	"github.com/vi13x/shop-lite-cli/internal/service"
	"github.com/vi13x/shop-lite-cli/internal/storage"
)

func main() {
	cfg, err := config.Parse("shopbot", os.Args[1:])
	if err != nil {
		os.Exit(config.ExitCode(os.Stderr, err))
	}
	log := cfg.Logger(os.Stderr)
	if cfg.BotToken == "" {
		log.Error("bot token is not set", "env", config.BotTokenEnv)
		os.Exit(1)
	}

	seed, err := cfg.Seed()
	if err != nil {
		log.Error("load catalog", "error", err)
		os.Exit(1)
	}
	catalog := storage.NewCatalog()
	if _, err := seed.Populate(catalog); err != nil {
		log.Error("load catalog", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := bot.Connect(ctx, cfg.BotToken, 2*time.Minute, log)
	if err != nil {
		log.Error("connect to telegram", "error", err)
		os.Exit(1)
	}
	log.Info("authorized", "account", api.Self.UserName)

	shop := service.NewShop(catalog, storage.NewLedger(), log)
	bot.Start(ctx, api, bot.NewRouter(shop), log)
}
