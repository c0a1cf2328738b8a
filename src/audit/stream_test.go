package audit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/nameguard/src/engine"
)

func TestStreamRecorder(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	rec := NewStreamRecorder(rdb, "")
	err := rec.Record(context.Background(), engine.Outcome{
		Candidate: engine.Candidate{GuildID: "G", UserID: "U", Username: "frogmonkee"},
		Result: engine.Result{
			State:         engine.StateBanFailed,
			Matched:       true,
			MatchedName:   "frogmonkee",
			MatchedMember: engine.Member{UserID: "P"},
		},
		TraceID:     "trace-1",
		EvaluatedAt: time.Unix(1700000000, 0),
	})
	require.NoError(t, err)

	msgs, err := rdb.XRange(context.Background(), DefaultStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	v := msgs[0].Values
	assert.Equal(t, "G", v["guild"])
	assert.Equal(t, "U", v["user"])
	assert.Equal(t, "frogmonkee", v["matched_name"])
	assert.Equal(t, "P", v["protected"])
	assert.Equal(t, "ban_failed", v["state"])
	assert.Equal(t, "trace-1", v["trace_id"])
	assert.Equal(t, "1700000000", v["ts"])
}

func TestStreamRecorderError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	err := NewStreamRecorder(rdb, "custom").Record(context.Background(), engine.Outcome{})
	assert.Error(t, err)
}
