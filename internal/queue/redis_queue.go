package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisQueue stores jobs in Redis so they survive process restarts.
//
// Layout under the configured prefix:
//
//	<prefix>:job:<id>  JSON-encoded Job
//	<prefix>:ready     list of job ids awaiting a worker
//	<prefix>:leased    zset of claimed ids scored by lease expiry (unix ms)
//	<prefix>:delayed   zset of retrying ids scored by ready time (unix ms)
//	<prefix>:dead      list of JSON-encoded DeadJob entries
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// NewRedisQueue builds a queue on the given client and key prefix.
func NewRedisQueue(client *redis.Client, prefix string) *RedisQueue {
	if prefix == "" {
		prefix = "gym:notify"
	}
	return &RedisQueue{client: client, prefix: prefix}
}

func (q *RedisQueue) jobKey(id string) string { return q.prefix + ":job:" + id }
func (q *RedisQueue) readyKey() string        { return q.prefix + ":ready" }
func (q *RedisQueue) leasedKey() string       { return q.prefix + ":leased" }
func (q *RedisQueue) delayedKey() string      { return q.prefix + ":delayed" }
func (q *RedisQueue) deadKey() string         { return q.prefix + ":dead" }

// claimScript pops the next ready id and records its lease in one step so
// two workers can never claim the same job.
var claimScript = redis.NewScript(`
local id = redis.call('RPOP', KEYS[1])
if not id then
    return false
end
redis.call('ZADD', KEYS[2], ARGV[1], id)
return id
`)

// moveDueScript returns members whose score is due back to the ready list.
// Shared by lease reclaim and delayed-retry promotion.
var moveDueScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(ids) do
    redis.call('ZREM', KEYS[1], id)
    redis.call('LPUSH', KEYS[2], id)
end
return #ids
`)

// Enqueue durably records the job before returning; delivery happens later
// in a worker loop. The write is two commands, job body first, so a crash
// between them leaves at worst an unreferenced key, never a dangling id.
func (q *RedisQueue) Enqueue(ctx context.Context, jobType JobType, payload any) (*Job, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	job := &Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    body,
		EnqueuedAt: time.Now().UTC(),
	}

	encoded, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal job: %w", err)
	}

	if err := q.client.Set(ctx, q.jobKey(job.ID), encoded, 0).Err(); err != nil {
		return nil, fmt.Errorf("store job: %w", err)
	}
	if err := q.client.LPush(ctx, q.readyKey(), job.ID).Err(); err != nil {
		return nil, fmt.Errorf("push job id: %w", err)
	}
	return job, nil
}

// Claim leases the next ready job. Ids whose body is missing (acked by a
// worker that crashed before removing the lease) are discarded and the next
// id is tried.
func (q *RedisQueue) Claim(ctx context.Context, leaseFor time.Duration) (*Job, error) {
	for {
		expiry := time.Now().Add(leaseFor).UnixMilli()
		res, err := claimScript.Run(ctx, q.client,
			[]string{q.readyKey(), q.leasedKey()},
			strconv.FormatInt(expiry, 10),
		).Result()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("claim: %w", err)
		}

		id, ok := res.(string)
		if !ok || id == "" {
			return nil, nil
		}

		encoded, err := q.client.Get(ctx, q.jobKey(id)).Result()
		if err == redis.Nil {
			_ = q.client.ZRem(ctx, q.leasedKey(), id).Err()
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load job %s: %w", id, err)
		}

		var job Job
		if err := json.Unmarshal([]byte(encoded), &job); err != nil {
			_ = q.client.ZRem(ctx, q.leasedKey(), id).Err()
			return nil, fmt.Errorf("decode job %s: %w", id, err)
		}
		return &job, nil
	}
}

// Ack removes a delivered job. Delete-after-deliver gives at-least-once
// semantics: a crash between delivery and Ack redelivers.
func (q *RedisQueue) Ack(ctx context.Context, job *Job) error {
	if err := q.client.Del(ctx, q.jobKey(job.ID)).Err(); err != nil {
		return err
	}
	return q.client.ZRem(ctx, q.leasedKey(), job.ID).Err()
}

// Retry persists the incremented attempt count and parks the job until its
// backoff delay elapses.
func (q *RedisQueue) Retry(ctx context.Context, job *Job, delay time.Duration) error {
	job.AttemptCount++
	encoded, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.Set(ctx, q.jobKey(job.ID), encoded, 0).Err(); err != nil {
		return err
	}
	if err := q.client.ZRem(ctx, q.leasedKey(), job.ID).Err(); err != nil {
		return err
	}
	readyAt := time.Now().Add(delay).UnixMilli()
	return q.client.ZAdd(ctx, q.delayedKey(), redis.Z{Score: float64(readyAt), Member: job.ID}).Err()
}

// Bury moves the job out of the retry cycle into the dead-letter list.
func (q *RedisQueue) Bury(ctx context.Context, job *Job, cause string) error {
	entry := DeadJob{Job: *job, Cause: cause, FailedAt: time.Now().UTC()}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal dead job: %w", err)
	}
	if err := q.client.LPush(ctx, q.deadKey(), encoded).Err(); err != nil {
		return err
	}
	if err := q.client.ZRem(ctx, q.leasedKey(), job.ID).Err(); err != nil {
		return err
	}
	return q.client.Del(ctx, q.jobKey(job.ID)).Err()
}

// ReclaimExpired moves expired leases and due retries back to ready.
func (q *RedisQueue) ReclaimExpired(ctx context.Context) (int, error) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)

	moved := 0
	for _, source := range []string{q.leasedKey(), q.delayedKey()} {
		res, err := moveDueScript.Run(ctx, q.client, []string{source, q.readyKey()}, now).Int()
		if err != nil {
			return moved, fmt.Errorf("reclaim from %s: %w", source, err)
		}
		moved += res
	}
	return moved, nil
}

// DeadLetters returns up to limit parked jobs, newest first.
func (q *RedisQueue) DeadLetters(ctx context.Context, limit int) ([]DeadJob, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := q.client.LRange(ctx, q.deadKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	result := make([]DeadJob, 0, len(entries))
	for _, raw := range entries {
		var dead DeadJob
		if err := json.Unmarshal([]byte(raw), &dead); err != nil {
			continue
		}
		result = append(result, dead)
	}
	return result, nil
}
