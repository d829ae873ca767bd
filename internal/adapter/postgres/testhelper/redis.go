package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	redisOnce    sync.Once
	sharedRedis  string
	redisInitErr error
)

// SetupTestRedis starts a shared Redis container (once per test run) and
// returns a client bound to it. The client is closed via t.Cleanup.
func SetupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	redisOnce.Do(func() {
		sharedRedis, redisInitErr = startRedisContainer()
	})
	if redisInitErr != nil {
		t.Fatalf("testhelper: failed to setup test redis: %v", redisInitErr)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        sharedRedis,
		DialTimeout: 5 * time.Second,
	})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func startRedisContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("%s:%s", host, port.Port()), nil
}
