package worker

// Jobs that keep failing after maxJobAttempts land in a dead letter list
// (dlq:{queue}) so a failed alert or email can be inspected and replayed by
// hand instead of silently disappearing.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type dlqEntry struct {
	Queue    string          `json:"queue"`
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

func sendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	entry := dlqEntry{
		Queue:    queue,
		JobType:  job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		Attempts: job.Attempts,
		FailedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Str("reason", reason).
		Int("attempts", job.Attempts).
		Msg("job moved to dead letter queue")
}

// DLQLength reports the number of dead jobs for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+queue).Result()
}

// ReplayDLQ moves up to n dead jobs back onto their source queue with the
// attempt counter reset. Returns how many were requeued.
func ReplayDLQ(ctx context.Context, rdb *redis.Client, queue string, n int) (int, error) {
	requeued := 0
	for i := 0; i < n; i++ {
		raw, err := rdb.RPop(ctx, dlqPrefix+queue).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return requeued, err
		}
		var entry dlqEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dlq: skipping malformed entry")
			continue
		}
		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			return requeued, err
		}
		if err := rdb.LPush(ctx, queue, encoded).Err(); err != nil {
			return requeued, err
		}
		requeued++
	}
	return requeued, nil
}
