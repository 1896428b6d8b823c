// Package seeding loads the product catalog and customer roster from
// CSV files, typically once when a business migrates its spreadsheets
// into the system. Imports are idempotent by name: rows matching an
// existing record are skipped, so rerunning a seed never duplicates.
package seeding

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/verdupulse/internal/logger"
	"github.com/guttosm/verdupulse/internal/storage"
)

const (
	productsFile  = "products.csv"
	customersFile = "customers.csv"
)

// Repository constructor indirections; tests can override these.
var (
	productRepoCtor = func(db *sql.DB) storage.ProductRepository {
		return storage.NewProductRepository(db)
	}
	customerRepoCtor = func(db *sql.DB) storage.CustomerRepository {
		return storage.NewCustomerRepository(db)
	}
)

// ImportDirectory seeds the catalog and roster from dir. Each seed file
// is optional; present ones are imported concurrently. The first error
// cancels the remaining work.
//
// Expected files:
//   - products.csv:  name,unit_price,unit,available,notes
//   - customers.csv: name,phone,address,notes
func ImportDirectory(ctx context.Context, dir string, db *sql.DB) error {
	products := productRepoCtor(db)
	customers := customerRepoCtor(db)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return importProducts(gctx, filepath.Join(dir, productsFile), products)
	})
	g.Go(func() error {
		return importCustomers(gctx, filepath.Join(dir, customersFile), customers)
	})
	return g.Wait()
}

func importProducts(ctx context.Context, path string, repo storage.ProductRepository) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.L().Info().Str("file", filepath.Base(path)).Msg("seed file absent, skipping")
		return nil
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Name] = true
	}

	inserted, skipped := 0, 0
	err = forEachRecord(path, productHeaders, func(_ int, rec []string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p, err := recordToProduct(rec)
		if err != nil {
			return err
		}
		if known[p.Name] {
			skipped++
			return nil
		}
		p.ID = uuid.New()
		if err := repo.Insert(ctx, &p); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
		known[p.Name] = true
		inserted++
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	logger.L().Info().Int("inserted", inserted).Int("skipped", skipped).Msg("products seeded")
	return nil
}

func importCustomers(ctx context.Context, path string, repo storage.CustomerRepository) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.L().Info().Str("file", filepath.Base(path)).Msg("seed file absent, skipping")
		return nil
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Name] = true
	}

	inserted, skipped := 0, 0
	err = forEachRecord(path, customerHeaders, func(_ int, rec []string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c, err := recordToCustomer(rec)
		if err != nil {
			return err
		}
		if known[c.Name] {
			skipped++
			return nil
		}
		c.ID = uuid.New()
		if err := repo.Insert(ctx, &c); err != nil {
			return fmt.Errorf("insert %q: %w", c.Name, err)
		}
		known[c.Name] = true
		inserted++
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	logger.L().Info().Int("inserted", inserted).Int("skipped", skipped).Msg("customers seeded")
	return nil
}
