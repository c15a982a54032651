// Command fragstore manages fragment sets kept in PostgreSQL.
//
// Flags (exactly one action besides -migrate):
//
//	-migrate        apply database migrations first
//	-publish FILE   canonicalize FILE, check it builds, and store it as the set
//	-export FILE    write the set to FILE
//	-list           print every set
//	-delete         remove the set
//	-set NAME       set name (default: orthography.set_name)
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/melani-orthography/internal/adapter/postgres"
	"github.com/heartmarshall/melani-orthography/internal/adapter/postgres/fragment"
	"github.com/heartmarshall/melani-orthography/internal/app"
	"github.com/heartmarshall/melani-orthography/internal/config"
	"github.com/heartmarshall/melani-orthography/internal/system"
	"github.com/heartmarshall/melani-orthography/pkg/ctxutil"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "apply database migrations")
	publishFlag := flag.String("publish", "", "publish a fragment file as the set")
	exportFlag := flag.String("export", "", "export the set to a fragment file")
	listFlag := flag.Bool("list", false, "list fragment sets")
	deleteFlag := flag.Bool("delete", false, "delete the set")
	setFlag := flag.String("set", "", "fragment set name (default from config)")
	flag.Parse()

	a, err := parseAction(*publishFlag, *exportFlag, *listFlag, *deleteFlag)
	if err != nil || (a == nil && !*migrateFlag) {
		fmt.Fprintln(os.Stderr, "usage: fragstore [-migrate] [-set NAME] [-publish FILE | -export FILE | -list | -delete]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatalf("load config: database.dsn is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx, _ = ctxutil.NewRun(ctx)

	logger := ctxutil.Logger(ctx, app.NewLogger(cfg.Log, "fragstore"))

	if err := run(ctx, logger, cfg, *migrateFlag, a, *setFlag); err != nil {
		logger.Error("fragstore failed", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, migrate bool, a *action, setName string) error {
	if migrate {
		results, err := postgres.Migrate(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	}
	if a == nil {
		return nil
	}

	layout, err := system.Load(cfg.Orthography.LayoutPath)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	name := cfg.Orthography.SetName
	if setName != "" {
		name = setName
	}

	c := &commands{store: fragment.New(pool), layout: layout, logger: logger.With(slog.String("set", name)), out: os.Stdout}
	return c.do(ctx, a, name)
}

var errUsage = errors.New("usage")

// parseAction returns the single requested action, nil when none was given.
func parseAction(publish, export string, list, del bool) (*action, error) {
	var actions []action
	if publish != "" {
		actions = append(actions, action{kind: actionPublish, path: publish})
	}
	if export != "" {
		actions = append(actions, action{kind: actionExport, path: export})
	}
	if list {
		actions = append(actions, action{kind: actionList})
	}
	if del {
		actions = append(actions, action{kind: actionDelete})
	}

	switch len(actions) {
	case 0:
		return nil, nil
	case 1:
		return &actions[0], nil
	default:
		return nil, errUsage
	}
}
