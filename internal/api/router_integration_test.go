//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/verdupulse/config"
	"github.com/guttosm/verdupulse/internal/app"
	"github.com/guttosm/verdupulse/internal/storage"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "verdupulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=verdupulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "verdupulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedForE2E inserts one customer, one product, one delivered order of
// 3 x 150 and one 100 expense, all dated day.
func seedForE2E(t *testing.T, db *sql.DB, day time.Time) (customerID, productID uuid.UUID) {
	t.Helper()
	customerID = uuid.New()
	productID = uuid.New()
	orderID := uuid.New()

	if _, err := db.Exec(`INSERT INTO customers (id, name, phone) VALUES ($1, 'Ana', '099123456')`, customerID); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO products (id, name, unit_price, unit, available) VALUES ($1, 'Lettuce', 150, 'unit', true)`, productID); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO orders (id, customer_id, status, total, created_at) VALUES ($1, $2, 'delivered', 450, $3)`, orderID, customerID, day.Add(10*time.Hour)); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, 3, 150)`, uuid.New(), orderID, productID); err != nil {
		t.Fatalf("seed line: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO expenses (id, name, category, amount, expense_date) VALUES ($1, 'fuel', 'logistics', 100, $2)`, uuid.New(), day); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	return customerID, productID
}

func TestAPI_E2E_SummaryAndOrderFlow(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	db := openAndMigrate(t, dsn)
	defer db.Close()

	day := time.Now().UTC().AddDate(0, 0, -2)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	customerID, productID := seedForE2E(t, db, day)

	// Point application config to containerized DB
	config.AppConfig.Postgres.Host = host
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig.Postgres.Port = int(p)
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "verdupulse"
	config.AppConfig.Postgres.SSLMode = "disable"
	config.AppConfig.Report.Timezone = "UTC"
	config.AppConfig.Report.TopProducts = 5

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	// Summary over a window containing the seeded day
	from := day.AddDate(0, 0, -1).Format("2006-01-02")
	to := day.AddDate(0, 0, 1).Format("2006-01-02")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?from="+from+"&to="+to, nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var summary struct {
		TotalRevenue string `json:"total_revenue"`
		TotalExpense string `json:"total_expense"`
		NetProfit    string `json:"net_profit"`
		RevenueByDay []struct {
			Revenue string `json:"revenue"`
		} `json:"revenue_by_day"`
		TopProducts []struct {
			Name string `json:"name"`
		} `json:"top_products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("json: %v", err)
	}
	if summary.TotalRevenue != "450" || summary.TotalExpense != "100" || summary.NetProfit != "350" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.RevenueByDay) != 3 {
		t.Fatalf("expected 3 days in series, got %d", len(summary.RevenueByDay))
	}
	if len(summary.TopProducts) != 1 || summary.TopProducts[0].Name != "Lettuce" {
		t.Fatalf("unexpected top products: %+v", summary.TopProducts)
	}

	// Create an order through the API; the unit price must come from the catalog
	body := fmt.Sprintf(`{"customer_id":%q,"lines":[{"product_id":%q,"quantity":2}]}`, customerID, productID)
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusCreated {
		t.Fatalf("create order: %d body=%s", w2.Code, w2.Body.String())
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Total  string `json:"total"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &created); err != nil {
		t.Fatalf("json: %v", err)
	}
	if created.Status != "confirmed" || created.Total != "300" {
		t.Fatalf("unexpected created order: %+v", created)
	}

	// Move it through the lifecycle; a terminal order then rejects changes
	patch := func(status string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+created.ID+"/status", strings.NewReader(fmt.Sprintf(`{"status":%q}`, status)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w.Code
	}
	if code := patch("prepared"); code != http.StatusOK {
		t.Fatalf("prepared: %d", code)
	}
	if code := patch("delivered"); code != http.StatusOK {
		t.Fatalf("delivered: %d", code)
	}
	if code := patch("cancelled"); code != http.StatusConflict {
		t.Fatalf("expected 409 for transition out of delivered, got %d", code)
	}
}
