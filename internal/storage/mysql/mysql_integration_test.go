//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suite_hotel/internal/domain"
	mysqlrepo "suite_hotel/internal/storage/mysql"
)

// migrationsDir prefers MIGRATIONS_DIR, else the repo's migrations/mysql.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations", "mysql")
}

func TestRepo_MySQL_BookingLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=suite",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "run mysql")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "suite")

	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}), "connect mysql")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, mysqlrepo.Migrate(db, migrationsDir(t), "up"))

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	first := domain.Booking{
		ID: "b-1", GuestAddress: "0xabc", HotelID: "0xh1", HotelName: "Sea Breeze",
		RoomType: "Deluxe", CheckIn: "2024-07-15", CheckOut: "2024-07-17",
		Nights: 2, Guests: 2, TotalPrice: 210, Status: domain.StatusConfirmed, TransactionID: "0xaa...bb",
	}
	second := first
	second.ID, second.HotelID, second.NFTToken = "b-2", "0xh2", "nft-1"
	other := first
	other.ID, other.GuestAddress = "b-3", "0xdef"

	for _, b := range []domain.Booking{first, second, other} {
		require.NoError(t, repo.InsertBooking(ctx, b))
	}
	require.NoError(t, repo.UpdateBookingStatus(ctx, "b-1", domain.StatusCancelled))
	require.ErrorIs(t, repo.UpdateBookingStatus(ctx, "zzz", domain.StatusCancelled), domain.ErrNotFound)

	got, err := repo.ListBookings(ctx, "0xabc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-1", got[0].ID)
	assert.Equal(t, domain.StatusCancelled, got[0].Status)
	assert.Equal(t, "2024-07-15", got[0].CheckIn)
	assert.Equal(t, "nft-1", got[1].NFTToken)

	b, err := repo.GetBooking(ctx, "b-3")
	require.NoError(t, err)
	assert.Equal(t, "0xdef", b.GuestAddress)
}
