//go:build integration

package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
)

var (
	testDB        *database.DB
	testContainer testcontainers.Container
)

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	ctx := context.Background()

	if err := setupTestDatabase(ctx); err != nil {
		log.Fatalf("Failed to setup test database: %v", err)
	}

	code := m.Run()

	cleanup(ctx)

	os.Exit(code)
}

// setupTestDatabase creates a PostgreSQL container and applies the
// portal schema
func setupTestDatabase(ctx context.Context) error {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "portal_test",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return fmt.Errorf("failed to start postgres container: %w", err)
	}
	testContainer = postgres

	host, err := postgres.Host(ctx)
	if err != nil {
		return fmt.Errorf("failed to get postgres host: %w", err)
	}

	port, err := postgres.MappedPort(ctx, "5432")
	if err != nil {
		return fmt.Errorf("failed to get postgres port: %w", err)
	}

	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		return fmt.Errorf("failed to parse postgres port: %w", err)
	}

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            portNum,
		Name:            "portal_test",
		User:            "test",
		Password:        "testpass",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 300,
	}

	testDB, err = database.NewConnection(dbConfig, logger.New("error"))
	if err != nil {
		return fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := testDB.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// cleanup tears down the test environment
func cleanup(ctx context.Context) {
	if testDB != nil {
		testDB.Close()
	}
	if testContainer != nil {
		if err := testContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate postgres container: %v", err)
		}
	}
}
