package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lborres/bantay/core"
	"github.com/lborres/bantay/internal/app"
	"github.com/lborres/bantay/internal/logging"
)

const usage = `usage:
  bantay [serve]                                   run the HTTP server
  bantay client -id ID -secret SECRET -redirect URI  provision a client`

func main() {
	cfg, err := core.LoadConfig()
	if err != nil {
		exitf("load config: %v", err)
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		exitf("create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		err = serve(ctx, cfg, log)
	case "client":
		err = provisionClient(ctx, cfg, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error(ctx, "command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *core.Config, log logging.Logger) error {
	store, closeStore, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	server, _, err := app.NewServer(cfg, store, log)
	if err != nil {
		return err
	}

	return app.Serve(ctx, server, cfg.ListenAddr, log)
}

func provisionClient(ctx context.Context, cfg *core.Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	id := fs.String("id", "", "client id")
	secret := fs.String("secret", "", "client secret")
	redirect := fs.String("redirect", "", "registered redirect uri, without query")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeStore, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	return app.ProvisionClient(ctx, store, core.ClientCredential{
		ClientID:     *id,
		ClientSecret: *secret,
		RedirectURI:  *redirect,
	})
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
