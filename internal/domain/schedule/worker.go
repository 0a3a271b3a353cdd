package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const dueBatchSize = 50

// Worker executes deferred schedules when their time comes
type Worker struct {
	svc      *Service
	interval time.Duration
	stopCh   chan struct{}
}

// NewWorker creates a new schedule executor worker
func NewWorker(svc *Service, interval time.Duration) *Worker {
	if interval == 0 {
		interval = 1 * time.Minute
	}
	return &Worker{
		svc:      svc,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background worker
func (w *Worker) Start() {
	log.Info().Dur("interval", w.interval).Msg("Starting schedule executor...")
	go w.loop()
}

// Stop gracefully stops the background worker
func (w *Worker) Stop() {
	log.Info().Msg("Stopping schedule executor...")
	close(w.stopCh)
}

func (w *Worker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once immediately on startup
	w.runDue()

	for {
		select {
		case <-ticker.C:
			w.runDue()
		case <-w.stopCh:
			return
		}
	}
}

func (w *Worker) runDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Debug().Msg("Checking for due schedules...")

	executed, err := w.svc.ExecuteDue(ctx, time.Now(), dueBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to execute due schedules")
		return
	}
	if executed > 0 {
		log.Info().Int("count", executed).Msg("Executed due schedules")
	}
}
