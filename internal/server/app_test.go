package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophcache/internal/client/config"
	"github.com/dmitrijs2005/gophcache/internal/client/models"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestApp_RunServesAndFlushesOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = config.DriverFile
	cfg.StoreDSN = t.TempDir()
	cfg.HTTPAddr = freeAddr(t)
	cfg.LogLevel = "error"

	ctx, cancel := context.WithCancel(context.Background())
	app, err := NewApp(ctx, cfg)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get("http://" + cfg.HTTPAddr + "/api/health")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app.cache.Cache.SetUser(ctx, &models.User{ID: "u"})
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}

	reopened, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "u", reopened.cache.Cache.GetUser(context.Background()).ID)
}

func TestNewApp_BadStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = config.DriverFile
	cfg.StoreDSN = ""

	_, err := NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "cache init error")
}
