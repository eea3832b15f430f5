package jobs

import (
	"testing"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOTP(t *testing.T, store *storage.MemoryStore, id string, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, store.CreateOTP(&models.OTPEntry{
		OTPID:         id,
		Code:          "123456",
		UserID:        "u-" + id,
		TransactionID: "t-" + id,
		ExpiresAt:     expiresAt,
		MaxAttempts:   3,
	}))
}

func TestCleanupJob_SweepRemovesOnlyExpired(t *testing.T) {
	store := storage.NewMemoryStore()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	seedOTP(t, store, "old", now.Add(-time.Second))
	seedOTP(t, store, "edge", now)
	seedOTP(t, store, "fresh", now.Add(time.Minute))

	job := NewCleanupJob(store, time.Hour)
	job.now = func() time.Time { return now }

	assert.Equal(t, 1, job.Sweep())
	assert.Equal(t, 2, store.CountOTPs())

	_, err := store.FindOTP("u-old", "t-old")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.FindOTP("u-fresh", "t-fresh")
	assert.NoError(t, err)
}

func TestCleanupJob_BackgroundSweep(t *testing.T) {
	store := storage.NewMemoryStore()
	seedOTP(t, store, "old", time.Now().Add(-time.Minute))

	job := NewCleanupJob(store, 10*time.Millisecond)
	job.Start()
	job.Start()
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return store.CountOTPs() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCleanupJob_StopIsIdempotent(t *testing.T) {
	job := NewCleanupJob(storage.NewMemoryStore(), 0)
	assert.Equal(t, DefaultSweepInterval, job.interval)

	job.Stop()
	job.Start()
	job.Stop()
	job.Stop()
}
