package redis_test

import (
	"context"
	"hotelier/config"
	"hotelier/infras/redis"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	server := miniredis.RunT(t)

	host, port, err := net.SplitHostPort(server.Addr())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = host
	cfg.Cache.Redis.Primary.Port = port

	client := redis.New(cfg)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "auth:revoked:abc", "1", 0).Err())
	assert.True(t, server.Exists("auth:revoked:abc"))
}

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "::1"
	cfg.Cache.Redis.Primary.Port = "6379"
	cfg.Cache.Redis.Primary.DB = 2

	opts := redis.Options(cfg)

	assert.Equal(t, "[::1]:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Positive(t, opts.ReadTimeout)
}
