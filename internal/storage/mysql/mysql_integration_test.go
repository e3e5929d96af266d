//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"ratewatch/internal/domain"
	mysqlrepo "ratewatch/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }
func pint(i int) *int       { return &i }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=ratewatch",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "ratewatch")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertAndQuery(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	c := domain.Comparison{
		HotelName:   "Hilton Tokyo",
		Location:    "Tokyo, Japan",
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, 4),
		StarRating:  pint(5),
		Description: pstr("Hilton Tokyo, Japan"),
	}
	id, err := repo.UpsertComparison(ctx, c)
	if err != nil {
		t.Fatalf("UpsertComparison: %v", err)
	}
	if id == 0 {
		t.Fatal("upsert returned id 0")
	}

	// Same stay again must hit the unique key and keep the id.
	id2, err := repo.UpsertComparison(ctx, c)
	if err != nil {
		t.Fatalf("UpsertComparison (again): %v", err)
	}
	if id2 != id {
		t.Fatalf("upsert changed identity: %d then %d", id, id2)
	}

	obs := []domain.PriceObservation{
		{Platform: "booking.com", PricePerNight: 175, TotalPrice: 700, Currency: "USD",
			ScreenshotURL: pstr("https://cdn.example/b.png"), ExtractedJSON: []byte(`{"raw":true}`)},
		{Platform: "expedia", PricePerNight: 200, TotalPrice: 800, Currency: "USD"},
		{Platform: "wholesalehotelrates", PricePerNight: 150, TotalPrice: 600, Currency: "USD"},
	}
	if err := repo.ReplaceObservations(ctx, id, obs); err != nil {
		t.Fatalf("ReplaceObservations: %v", err)
	}
	// Replace is idempotent, not additive.
	if err := repo.ReplaceObservations(ctx, id, obs); err != nil {
		t.Fatalf("ReplaceObservations (again): %v", err)
	}

	got, err := repo.GetComparison(ctx, id)
	if err != nil {
		t.Fatalf("GetComparison: %v", err)
	}
	if got.HotelName != "Hilton Tokyo" || !got.CheckIn.Equal(checkIn) {
		t.Fatalf("unexpected comparison: %+v", got)
	}
	if got.Nights() != 4 {
		t.Fatalf("nights: got %d want 4", got.Nights())
	}
	if len(got.Observations) != 3 {
		t.Fatalf("observations: got %d want 3", len(got.Observations))
	}
	var booking *domain.PriceObservation
	for i := range got.Observations {
		if got.Observations[i].Platform == "booking.com" {
			booking = &got.Observations[i]
		}
	}
	if booking == nil || booking.ScreenshotURL == nil || *booking.ScreenshotURL != "https://cdn.example/b.png" {
		t.Fatalf("screenshot url lost: %+v", booking)
	}
	if string(booking.ExtractedJSON) != `{"raw":true}` {
		t.Fatalf("extracted json lost: %s", booking.ExtractedJSON)
	}

	if _, err := repo.GetComparison(ctx, 999999); err != domain.ErrNotFound {
		t.Fatalf("missing id: got %v want ErrNotFound", err)
	}

	page, err := repo.ListComparisons(ctx, domain.ComparisonsQuery{Limit: 20})
	if err != nil {
		t.Fatalf("ListComparisons: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != id {
		t.Fatalf("unexpected page: %+v", page.Items)
	}

	if err := repo.LogMiss(ctx, "expedia", "Tokyo, Japan", "timeout"); err != nil {
		t.Fatalf("LogMiss: %v", err)
	}
	var misses int
	if err := db.QueryRow("SELECT COUNT(*) FROM scrape_misses").Scan(&misses); err != nil {
		t.Fatalf("count misses: %v", err)
	}
	if misses != 1 {
		t.Fatalf("misses: got %d want 1", misses)
	}
}
