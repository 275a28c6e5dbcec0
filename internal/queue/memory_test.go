package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueueEnqueueClaimAck(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	payload := HelpOrderAnsweredPayload{HelpOrderID: "h1", StudentEmail: "a@b.com"}
	job, err := q.Enqueue(ctx, JobHelpOrderAnswered, payload)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, 1, q.Depth())

	claimed, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, job.ID, claimed.ID)

	var decoded HelpOrderAnsweredPayload
	require.NoError(t, json.Unmarshal(claimed.Payload, &decoded))
	assert.Equal(t, "h1", decoded.HelpOrderID)

	// A claimed job is invisible to other workers.
	other, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, q.Ack(ctx, claimed))
	assert.Equal(t, 0, q.Depth())
}

func TestMemoryQueueRetryBecomesReady(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	_, err := q.Enqueue(ctx, JobRegistrationConfirmation, RegistrationConfirmationPayload{RegistrationID: "r1"})
	require.NoError(t, err)

	job, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, job)

	require.NoError(t, q.Retry(ctx, job, 0))
	assert.Equal(t, 1, job.AttemptCount)

	// Delayed jobs surface only through reclamation.
	idle, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, idle)

	moved, err := q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	again, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, 1, again.AttemptCount)
}

func TestMemoryQueueExpiredLeaseReclaimed(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	_, err := q.Enqueue(ctx, JobRegistrationConfirmation, RegistrationConfirmationPayload{RegistrationID: "r1"})
	require.NoError(t, err)

	job, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, job)

	q.ExpireLease(job.ID)
	moved, err := q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	redelivered, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, redelivered)
	assert.Equal(t, job.ID, redelivered.ID)
}

func TestMemoryQueueBury(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	_, err := q.Enqueue(ctx, JobHelpOrderAnswered, HelpOrderAnsweredPayload{HelpOrderID: "h1"})
	require.NoError(t, err)

	job, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, job)

	require.NoError(t, q.Bury(ctx, job, "mailer unreachable"))
	assert.Equal(t, 0, q.Depth())

	dead := q.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, job.ID, dead[0].Job.ID)
	assert.Equal(t, "mailer unreachable", dead[0].Cause)
}

func TestMemoryQueueClaimOrderFIFO(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	first, err := q.Enqueue(ctx, JobHelpOrderAnswered, HelpOrderAnsweredPayload{HelpOrderID: "h1"})
	require.NoError(t, err)
	second, err := q.Enqueue(ctx, JobHelpOrderAnswered, HelpOrderAnsweredPayload{HelpOrderID: "h2"})
	require.NoError(t, err)

	a, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	b, err := q.Claim(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, first.ID, a.ID)
	assert.Equal(t, second.ID, b.ID)
}
