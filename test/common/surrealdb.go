package common

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestNamespace is the SurrealDB namespace used by storage tests
const TestNamespace = "folio_test"

const surrealImage = "surrealdb/surrealdb:v3.0.0"

// externalSurrealEnv points tests at an already running SurrealDB instead of
// starting a container.
const externalSurrealEnv = "FOLIO_TEST_SURREALDB_ADDRESS"

var (
	surrealOnce  sync.Once
	surrealDB    *SurrealDB
	surrealError error
)

// SurrealDB is a SurrealDB endpoint shared by every test in the process.
type SurrealDB struct {
	container testcontainers.Container
	address   string
}

// StartSurrealDB returns the shared SurrealDB endpoint, starting a container
// on first use.
func StartSurrealDB(t *testing.T) *SurrealDB {
	t.Helper()

	surrealOnce.Do(func() {
		if addr := os.Getenv(externalSurrealEnv); addr != "" {
			surrealDB = &SurrealDB{address: addr}
			return
		}
		surrealDB, surrealError = startContainer(context.Background())
	})

	if surrealError != nil {
		t.Fatalf("SurrealDB unavailable: %v", surrealError)
	}
	return surrealDB
}

func startContainer(ctx context.Context) (*SurrealDB, error) {
	req := testcontainers.ContainerRequest{
		Image:        surrealImage,
		ExposedPorts: []string{"8000/tcp"},
		Cmd:          []string{"start", "--user", "root", "--pass", "root"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("8000/tcp"),
			wait.ForLog("Started web server"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start SurrealDB container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("get SurrealDB host: %w", err)
	}
	port, err := container.MappedPort(ctx, "8000/tcp")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("get SurrealDB port: %w", err)
	}

	return &SurrealDB{
		container: container,
		address:   fmt.Sprintf("ws://%s:%s/rpc", host, port.Port()),
	}, nil
}

// Address returns the WebSocket RPC address.
func (s *SurrealDB) Address() string {
	return s.address
}

// DatabaseName derives an isolated database name from the test name.
// SurrealDB rejects "/" so subtest separators are replaced.
func DatabaseName(t *testing.T, prefix string) string {
	sanitized := strings.NewReplacer("/", "_", " ", "_", "-", "_").Replace(t.Name())
	return fmt.Sprintf("%s_%s_%d", prefix, sanitized, time.Now().UnixNano()%100000)
}

// Cleanup terminates a container started by StartSurrealDB.
func (s *SurrealDB) Cleanup() {
	if s != nil && s.container != nil {
		s.container.Terminate(context.Background())
	}
}
