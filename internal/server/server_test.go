package server

import (
	"context"
	"testing"

	"github.com/deppfellow/go-profile/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdown_ReleasesPartialServer(t *testing.T) {
	nop := zerolog.Nop()
	srv := &Server{
		Config: &config.Config{},
		Logger: &nop,
		Redis:  redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}),
	}

	require.NoError(t, srv.Shutdown(context.Background()))

	assert.ErrorIs(t, srv.Redis.Ping(context.Background()).Err(), redis.ErrClosed)
}

func TestStart_WithoutHTTPServer(t *testing.T) {
	nop := zerolog.Nop()
	srv := &Server{Config: &config.Config{}, Logger: &nop}

	assert.Error(t, srv.Start())
}
