package batch

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type status struct {
	checked  uint64
	leaked   uint64
	failed   uint64
	start    time.Time
	ticker   *time.Ticker
	progress chan bool
	total    int
}

func newStatus(total int, every time.Duration) *status {
	return &status{
		start:    time.Now(),
		ticker:   time.NewTicker(every),
		progress: make(chan bool),
		total:    total,
	}
}

// BeginProgress logs how far the batch is on every tick until Done is called.
func (s *status) BeginProgress() {
	go func() {
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				log.Info().Msgf("%.2f%% passwords checked. %.0f passwords/s",
					float64(atomic.LoadUint64(&s.checked))*100/float64(s.total), s.perSecond())
			}
		}
	}()
}

func (s *status) Checked() {
	atomic.AddUint64(&s.checked, 1)
}

func (s *status) Leaked() {
	atomic.AddUint64(&s.leaked, 1)
}

func (s *status) LookupFailed() {
	atomic.AddUint64(&s.failed, 1)
}

func (s *status) perSecond() float64 {
	checked := float64(atomic.LoadUint64(&s.checked))
	elapsed := time.Since(s.start)
	if elapsed.Nanoseconds() > 0 {
		return checked / elapsed.Seconds()
	}
	return checked
}

func (s *status) Done() {
	s.ticker.Stop()
	s.progress <- true

	p := message.NewPrinter(language.English)
	log.Info().Msgf("finished checking %s passwords in %v. %.0f passwords/s",
		p.Sprintf("%d", atomic.LoadUint64(&s.checked)), time.Since(s.start), s.perSecond())
	log.Debug().Msgf("leaked: %s, lookups failed: %s",
		p.Sprintf("%d", atomic.LoadUint64(&s.leaked)), p.Sprintf("%d", atomic.LoadUint64(&s.failed)))
}
