package seeding

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

// Seed files carry a fixed header. If the header doesn't match EXACTLY
// (order + count), the import must fail rather than guess columns.
var (
	productHeaders  = []string{"name", "unit_price", "unit", "available", "notes"}
	customerHeaders = []string{"name", "phone", "address", "notes"}
)

// forEachRecord opens a CSV file, validates the header strictly and
// calls fn for every data row. It fails on:
//   - header not matching expected order/length
//   - rows with the wrong column count
//   - unrecoverable I/O errors
func forEachRecord(path string, want []string, fn func(line int, rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // checked explicitly per row

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(want) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(want), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != want[i] {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, want[i], h)
		}
	}

	line := 1 // header already read
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(want) {
			return fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(want), len(rec))
		}
		if err := fn(line, rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// recordToProduct converts one validated products.csv row into a
// models.Product. Strict about types, tolerant about optional cells.
//
// Column order:
//
//	0 name        → Name (required)
//	1 unit_price  → UnitPrice (decimal, must be positive)
//	2 unit        → Unit (required, e.g. "kg", "unit", "bunch")
//	3 available   → Available (bool, empty → true)
//	4 notes       → Notes (optional)
func recordToProduct(rec []string) (models.Product, error) {
	var p models.Product

	p.Name = strings.TrimSpace(rec[0])
	if p.Name == "" {
		return p, fmt.Errorf("empty name")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
	if err != nil {
		return p, fmt.Errorf("invalid unit_price: %v", err)
	}
	if !price.IsPositive() {
		return p, fmt.Errorf("unit_price must be positive, got %s", price)
	}
	p.UnitPrice = price

	p.Unit = strings.TrimSpace(rec[2])
	if p.Unit == "" {
		return p, fmt.Errorf("empty unit")
	}

	p.Available = true
	if s := strings.TrimSpace(rec[3]); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return p, fmt.Errorf("invalid available: %v", err)
		}
		p.Available = v
	}

	p.Notes = strings.TrimSpace(rec[4])
	return p, nil
}

// recordToCustomer converts one validated customers.csv row into a
// models.Customer.
//
// Column order:
//
//	0 name    → Name (required)
//	1 phone   → Phone (required)
//	2 address → Address (optional)
//	3 notes   → Notes (optional)
func recordToCustomer(rec []string) (models.Customer, error) {
	var c models.Customer

	c.Name = strings.TrimSpace(rec[0])
	if c.Name == "" {
		return c, fmt.Errorf("empty name")
	}
	c.Phone = strings.TrimSpace(rec[1])
	if c.Phone == "" {
		return c, fmt.Errorf("empty phone")
	}
	c.Address = strings.TrimSpace(rec[2])
	c.Notes = strings.TrimSpace(rec[3])
	return c, nil
}
