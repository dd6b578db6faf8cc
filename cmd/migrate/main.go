// Command migrate applies the SQL files under migrations/ to the database
// configured through the DB_* variables. It shells out to the atlas CLI.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"shareit/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files and atlas.sum")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(*dir, *atlasBin, cfg.DB, *dryRun); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dir, atlasBin string, db config.DBConfig, dryRun bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasBin)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    db.BuildDSN(),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	slog.Info("Migrations applied",
		"current", res.Current,
		"target", res.Target,
		"applied", len(res.Applied),
		"pending", len(res.Pending),
		"dry_run", dryRun)
	return nil
}
