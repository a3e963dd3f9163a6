package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConnectRedisUnreachable(t *testing.T) {
	// port 1 is never listening; the dial must fail and no client leak out
	rdb, err := ConnectRedis("127.0.0.1:1", "", 0, zap.NewNop().Sugar())
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
