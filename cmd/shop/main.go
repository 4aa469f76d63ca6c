package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/vi13x/shop-lite-cli/internal/cli"
	"github.com/vi13x/shop-lite-cli/internal/config"
	"github.com/vi13x/shop-lite-cli/internal/service"
	"github.com/vi13x/shop-lite-cli/internal/storage"
)

func main() {
	cfg, err := config.Parse("shop", os.Args[1:])
	if err != nil {
		os.Exit(config.ExitCode(os.Stderr, err))
	}
	log := cfg.Logger(os.Stderr)
	slog.SetDefault(log)

	seed, err := cfg.Seed()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка загрузки каталога:", err)
		os.Exit(1)
	}
	catalog := storage.NewCatalog()
	n, err := seed.Populate(catalog)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка загрузки каталога:", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "products", n, "source", cfg.CatalogPath)

	shop := service.NewShop(catalog, storage.NewLedger(), log)
	ui := cli.NewUI(shop, bufio.NewReader(os.Stdin), os.Stdout, cli.Config{
		ReportsDir:    cfg.ReportsDir,
		AdminPassword: cfg.AdminPassword,
	})
	ui.Run()
}
