package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
)

// DefaultSweepInterval is how often expired OTPs are swept when no interval is configured
const DefaultSweepInterval = 30 * time.Second

// CleanupJob periodically removes expired OTPs from the ledger.
// Expiry is enforced at verify time; this only reclaims memory.
type CleanupJob struct {
	store    storage.Store
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	isRunning bool
	stop      chan struct{}
	done      chan struct{}
}

// NewCleanupJob creates a new sweeper over store
func NewCleanupJob(store storage.Store, interval time.Duration) *CleanupJob {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &CleanupJob{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins sweeping in the background
func (j *CleanupJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		log.Println("OTP cleanup job already running")
		return
	}

	j.isRunning = true
	j.stop = make(chan struct{})
	j.done = make(chan struct{})

	go j.run(j.stop, j.done)
	log.Printf("Started OTP cleanup job (every %v)", j.interval)
}

// Stop halts the sweeper and waits for it to exit. Safe to call more than once.
func (j *CleanupJob) Stop() {
	j.mu.Lock()
	if !j.isRunning {
		j.mu.Unlock()
		return
	}
	j.isRunning = false
	close(j.stop)
	done := j.done
	j.mu.Unlock()

	<-done
	log.Println("Stopped OTP cleanup job")
}

func (j *CleanupJob) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep removes every OTP expired at the current time and returns how many were removed
func (j *CleanupJob) Sweep() int {
	removed, err := j.store.DeleteExpiredOTPs(j.now())
	if err != nil {
		log.Printf("Error sweeping expired OTPs: %v", err)
		return 0
	}
	for _, id := range removed {
		log.Printf("🗑️ Expired OTP cleaned up: %s", id)
	}
	return len(removed)
}
