package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mapacultural/fomenta/internal/portal/store"
)

// HousekeepingService periodically purges consumed and expired
// password-reset rows. Nothing else in the schema accumulates garbage;
// tokens live client-side and are never persisted.
type HousekeepingService struct {
	store    store.Store
	logger   *slog.Logger
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	return &HousekeepingService{
		store:    st,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. One run happens immediately so a
// frequently restarted service still cleans up.
func (s *HousekeepingService) Start() {
	go func() {
		defer close(s.done)

		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight run to finish.
func (s *HousekeepingService) Stop() {
	close(s.stop)
	<-s.done
}

func (s *HousekeepingService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.store.PasswordResets().DeleteExpiredPasswordResets(ctx, time.Now().UTC()); err != nil {
		s.logger.Warn("housekeeping: purging password resets failed", "err", err)
		return
	}
	s.logger.Debug("housekeeping: purged expired password resets")
}
