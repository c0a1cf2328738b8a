package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/nameguard/src/engine"
)

const (
	DefaultStream = "nameguard.verdicts"
	// maxLen caps the stream with approximate trimming.
	maxLen = 100000
)

// StreamRecorder appends matched outcomes to a Redis stream.
type StreamRecorder struct {
	rdb    redis.Cmdable
	stream string
}

var _ engine.Recorder = (*StreamRecorder)(nil)

func NewStreamRecorder(rdb redis.Cmdable, stream string) *StreamRecorder {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamRecorder{rdb: rdb, stream: stream}
}

func (r *StreamRecorder) Record(ctx context.Context, o engine.Outcome) error {
	ts := o.EvaluatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"guild":        o.Candidate.GuildID,
			"user":         o.Candidate.UserID,
			"username":     o.Candidate.Username,
			"nickname":     o.Candidate.Nickname,
			"matched_name": o.Result.MatchedName,
			"protected":    o.Result.MatchedMember.UserID,
			"state":        o.Result.State.String(),
			"trace_id":     o.TraceID,
			"ts":           ts.Unix(),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("audit: xadd %s: %w", r.stream, err)
	}
	return nil
}
