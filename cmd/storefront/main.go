// Command storefront is a terminal client for the storefront catalog
// service: it browses and filters the catalog, manages favorites, and
// drives the admin create/update/delete flow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/colorindo-sonhos/storefront-client/internal/api"
	"github.com/colorindo-sonhos/storefront-client/internal/credential"
)

const usage = `usage: storefront <command> [flags]

commands:
  list      browse the catalog (filters, pagination)
  get       show one product by id
  login     authenticate and persist the session token
  logout    discard the session token
  register  create an account
  fav       toggle a product's favorite state
  favs      list favorites (subcommands: count, clear)
  admin     manage the catalog (create, update, delete)
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	lg, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()
	ctx = zctx.Base(ctx, lg)

	creds := credential.NewFile(cfg.TokenFile)
	client := api.New(cfg.BaseURL, creds, api.WithTimeout(cfg.Timeout))

	app := &cli{cfg: cfg, client: client, creds: creds}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return app.list(ctx, rest)
	case "get":
		return app.get(ctx, rest)
	case "login":
		return app.login(ctx, rest)
	case "logout":
		return app.logout()
	case "register":
		return app.register(ctx, rest)
	case "fav":
		return app.fav(ctx, rest)
	case "favs":
		return app.favs(ctx, rest)
	case "admin":
		return app.admin(ctx, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// buildLogger creates a production zap logger on stderr at the given level,
// keeping stdout clean for command output.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
