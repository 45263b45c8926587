//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRebuyWithMySQL tests snapshot recording against a MySQL backend.
func TestRebuyWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "rebuy",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/rebuy?parseTime=true", host, port.Port())
	runSnapshotFlow(t, "mysql", connStr)
}

// TestRebuyWithPostgres tests snapshot recording against a PostgreSQL backend.
func TestRebuyWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://postgres@%s:%s/postgres", host, port.Port())
	runSnapshotFlow(t, "postgresql", connStr)
}

// runSnapshotFlow drives a full snapshot lifecycle against the given backend.
func runSnapshotFlow(t *testing.T, backend, connStr string) {
	workDir := t.TempDir()
	dataPath := filepath.Join(workDir, "transactions.csv")

	_, err := runRebuyCommand(t, "gen", dataPath, "--customers", "30", "--products", "2", "--seed", "7")
	require.NoError(t, err)

	_ = os.Setenv("REBUY_SNAPSHOT_BACKEND", backend)
	_ = os.Setenv("REBUY_SNAPSHOT_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("REBUY_SNAPSHOT_BACKEND") }()
	defer func() { _ = os.Unsetenv("REBUY_SNAPSHOT_DB_CONNECT") }()

	// Apply migrations first
	_, err = runRebuyCommand(t, "snapshot", "migrate")
	require.NoError(t, err)

	// Each compare records one run
	_, err = runRebuyCommand(t, "compare", dataPath)
	require.NoError(t, err)
	_, err = runRebuyCommand(t, "compare", dataPath)
	require.NoError(t, err)

	out, err := runRebuyCommand(t, "snapshot", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 2")

	_, err = runRebuyCommand(t, "snapshot", "export", "--output-file", filepath.Join(workDir, "export"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(workDir, "export.runs.parquet"))

	_, err = runRebuyCommand(t, "snapshot", "clear")
	require.NoError(t, err)

	out, err = runRebuyCommand(t, "snapshot", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 0")
}
