package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cartsync-demo/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()

	dir := t.TempDir()
	body := fmt.Sprintf(`api:
  base_url: %s
  timeout_seconds: 5
storage:
  driver: sqlite
  dsn: %s
log:
  mode: release
  dir: %s
cart:
  notice_ttl_ms: 50
`, baseURL, filepath.Join(dir, "cart.db"), filepath.Join(dir, "logs"))

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func startBackend(t *testing.T) string {
	t.Helper()

	db, err := backend.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, backend.Migrate(db))
	_, err = backend.Seed(db)
	require.NoError(t, err)

	srv := httptest.NewServer(backend.NewRouter(db, zap.NewNop()))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return srv.URL
}

func register(t *testing.T, conf, name, email string) string {
	t.Helper()

	out, err := execute(t, "--config", conf, "register", name, email, "secret123")
	require.NoError(t, err)
	m := regexp.MustCompile(`Registered user (\d+)`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestCartctlSession(t *testing.T) {
	conf := writeConfig(t, startBackend(t))
	t.Cleanup(func() { userID = 0 })

	out, err := execute(t, "--config", conf, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Wireless Mouse")

	out, err = execute(t, "--config", conf, "register", "asha", "asha@example.com", "secret123")
	require.NoError(t, err)
	m := regexp.MustCompile(`Registered user (\d+)`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)

	out, err = execute(t, "--config", conf, "login", "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "--user "+m[1])

	user := strconv.FormatInt(id, 10)

	out, err = execute(t, "--config", conf, "--user", user, "add", "1", "--qty", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Product added to cart!")

	out, err = execute(t, "--config", conf, "--user", user, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "299.98")

	out, err = execute(t, "--config", conf, "--user", user, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart cleared successfully")

	out, err = execute(t, "--config", conf, "--user", user, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")

	_, err = execute(t, "--config", conf, "--user", user, "update", "1", "3")
	assert.Error(t, err)

	_, err = execute(t, "--config", conf, "--user", user, "remove", "abc")
	assert.ErrorContains(t, err, "invalid id")
}

func TestCartctlAdmin(t *testing.T) {
	conf := writeConfig(t, startBackend(t))
	t.Cleanup(func() { userID = 0 })

	out, err := execute(t, "--config", conf, "products", "create", "--name", "Bamboo Lamp", "--price", "10.5", "--stock", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Bamboo Lamp")
	assert.Contains(t, out, "10.50")

	// eight demo products are seeded first
	out, err = execute(t, "--config", conf, "products", "update", "9", "--price", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Bamboo Lamp")
	assert.Contains(t, out, "12.00")

	out, err = execute(t, "--config", conf, "products", "delete", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Product deleted successfully")

	out, err = execute(t, "--config", conf, "products")
	require.NoError(t, err)
	assert.NotContains(t, out, "Bamboo Lamp")

	_, err = execute(t, "--config", conf, "products", "delete", "9")
	assert.Error(t, err)

	user := register(t, conf, "ravi", "ravi@example.com")

	out, err = execute(t, "--config", conf, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "ravi@example.com")

	out, err = execute(t, "--config", conf, "users", "show", user)
	require.NoError(t, err)
	assert.Contains(t, out, "CUSTOMER")

	_, err = execute(t, "--config", conf, "--user", user, "add", "1", "--qty", "1")
	require.NoError(t, err)

	out, err = execute(t, "--config", conf, "--user", user, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment #1 for order #1")

	out, err = execute(t, "--config", conf, "orders", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "COMPLETED")

	out, err = execute(t, "--config", conf, "orders", "status", "1", "shipped")
	require.NoError(t, err)
	assert.Contains(t, out, "SHIPPED")

	_, err = execute(t, "--config", conf, "orders", "status", "1", "lost")
	assert.ErrorContains(t, err, "invalid status")

	out, err = execute(t, "--config", conf, "payment", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment #1 for order #1")
	assert.Contains(t, out, "COMPLETED")
}
