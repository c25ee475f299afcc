package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	require.NoError(t, InitRedis(context.Background(), mr.Addr(), "", 0))
	require.NotNil(t, Rdb)
	assert.NoError(t, Close())
	assert.Nil(t, Rdb)
}

func TestInitRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	err := InitRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
	assert.Nil(t, Rdb)
}
