// Command migrate applies the embedded schema migrations to the configured
// database. It reads the same configuration sources as the server.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/idkeeper/internal/server/config"
	"github.com/dmitrijs2005/idkeeper/internal/server/repositories/repomanager"
)

func run(ctx context.Context, cfg *config.Config) error {
	db, m, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := m.RunMigrations(ctx, db); err != nil {
		return err
	}

	log.Printf("migrations applied (%s)", m.Dialect())
	return nil
}

func main() {
	if err := run(context.Background(), config.LoadConfig()); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}
