package sparks

import (
	"sync"
	"time"
)

// Scheduler invokes a callback once per display refresh.
//
// The default implementation approximates vsync with a time.Ticker. Hosts
// that own a real frame callback (a gogpu window's present loop, a video
// encoder) supply their own via WithScheduler; the effect then ticks in
// lockstep with the host's refresh.
type Scheduler interface {
	// Start begins delivering ticks. The callback is invoked from a single
	// goroutine, never concurrently with itself.
	Start(tick func(now time.Time))

	// Stop ends delivery and blocks until no further callback will fire.
	// Stop is idempotent.
	Stop()
}

// tickerScheduler drives ticks from a time.Ticker on its own goroutine.
type tickerScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
}

// newTickerScheduler creates a scheduler firing at the given rate in Hz.
// Non-positive rates fall back to 60 Hz.
func newTickerScheduler(hz float64) *tickerScheduler {
	if hz <= 0 {
		hz = 60
	}
	return &tickerScheduler{
		interval: time.Duration(float64(time.Second) / hz),
	}
}

func (s *tickerScheduler) Start(tick func(now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-t.C:
				tick(now)
			}
		}
	}(s.stop, s.done)
}

func (s *tickerScheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}
