// Package explorer holds the per-user popup state: selected location, date
// range, the three metric slides and their carousel.
package explorer

import (
	"context"
	"errors"
	"sync"
	"time"

	"weather-explorer/internal/carousel"
	"weather-explorer/internal/models"
	"weather-explorer/internal/repositories"
	"weather-explorer/internal/series"
	"weather-explorer/pkg/logger"
)

var (
	ErrInvalidDateRange = errors.New("invalid date range: from must not be after to")
	ErrNoSelection      = errors.New("no location selected")
	ErrSessionNotFound  = errors.New("session not found")
)

type SlideStatus string

const (
	StatusIdle    SlideStatus = "idle"
	StatusLoading SlideStatus = "loading"
	StatusReady   SlideStatus = "ready"
	StatusError   SlideStatus = "error"
)

// Slide is one chart of the carousel.
type Slide struct {
	Kind   models.MetricKind `json:"kind"`
	Status SlideStatus       `json:"status"`
	Error  string            `json:"error,omitempty"`
	Series series.Series     `json:"series"`
}

type RangeView struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// View is what the popup renders. Open is false when nothing is selected.
type View struct {
	ID       string                   `json:"id"`
	Open     bool                     `json:"open"`
	Location *models.SelectedLocation `json:"location,omitempty"`
	Range    RangeView                `json:"range"`
	Slides   []Slide                  `json:"slides,omitempty"`
	Carousel *carousel.State          `json:"carousel,omitempty"`
}

type Options struct {
	DefaultRange     models.DateRange
	CarouselInterval time.Duration
	// CarouselOptions are appended after the interval, tests use them for fake timers.
	CarouselOptions []carousel.Option
	OnClose         func()
}

// Session is one popup shell. Every refresh bumps the generation; fetch
// results carrying an older generation are dropped.
type Session struct {
	id   string
	repo repositories.SampleRepository
	l    *logger.Logger
	opts Options
	now  func() time.Time

	mu         sync.Mutex
	location   *models.SelectedLocation
	dateRange  models.DateRange
	slides     []Slide
	carousel   *carousel.Controller
	generation uint64
	cancel     context.CancelFunc
	lastSeen   time.Time
	destroyed  bool

	inflight sync.WaitGroup
}

func NewSession(id string, repo repositories.SampleRepository, l *logger.Logger, opts Options) *Session {
	s := &Session{
		id:        id,
		repo:      repo,
		l:         l,
		opts:      opts,
		now:       time.Now,
		dateRange: opts.DefaultRange,
	}
	s.lastSeen = s.now()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Select opens the popup at loc and fetches the three series.
func (s *Session) Select(loc models.SelectedLocation) View {
	s.mu.Lock()
	s.touchLocked()

	if s.destroyed {
		v := s.viewLocked()
		s.mu.Unlock()
		return v
	}

	s.location = &loc
	if s.carousel == nil {
		s.carousel = carousel.New(len(models.MetricKinds), s.carouselOptions()...)
	} else {
		// New slide contents: restart the interval, keep the index.
		s.carousel.SetSlides(len(models.MetricKinds))
	}

	s.l.Info("location selected", map[string]any{
		"session": s.id,
		"lat":     loc.Latitude,
		"lon":     loc.Longitude,
	})

	s.refreshLocked()
	v := s.viewLocked()
	s.mu.Unlock()
	return v
}

// SetDateRange stores r and refetches when the popup is open. A partial range
// is kept but triggers no fetch.
func (s *Session) SetDateRange(r models.DateRange) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if !r.Valid() {
		return s.viewLocked(), ErrInvalidDateRange
	}

	s.dateRange = r
	if s.location != nil && !s.destroyed {
		s.refreshLocked()
	}

	return s.viewLocked(), nil
}

// Close dismisses the popup. The date range survives.
func (s *Session) Close() View {
	s.mu.Lock()
	s.touchLocked()
	wasOpen := s.location != nil
	s.teardownLocked()
	v := s.viewLocked()
	onClose := s.opts.OnClose
	s.mu.Unlock()

	if wasOpen && onClose != nil {
		onClose()
	}
	return v
}

// Destroy tears the session down for good, without the close callback.
func (s *Session) Destroy() {
	s.mu.Lock()
	s.teardownLocked()
	s.destroyed = true
	s.mu.Unlock()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.viewLocked()
}

func (s *Session) Next() (carousel.State, error) {
	return s.withCarousel(func(c *carousel.Controller) (carousel.State, error) { return c.Next(), nil })
}

func (s *Session) Prev() (carousel.State, error) {
	return s.withCarousel(func(c *carousel.Controller) (carousel.State, error) { return c.Prev(), nil })
}

func (s *Session) Show(index int) (carousel.State, error) {
	return s.withCarousel(func(c *carousel.Controller) (carousel.State, error) { return c.Show(index) })
}

func (s *Session) Pause() (carousel.State, error) {
	return s.withCarousel(func(c *carousel.Controller) (carousel.State, error) { return c.Pause(), nil })
}

func (s *Session) Resume() (carousel.State, error) {
	return s.withCarousel(func(c *carousel.Controller) (carousel.State, error) { return c.Resume(), nil })
}

// Slide returns the slide at index for rendering.
func (s *Session) Slide(index int) (Slide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if s.location == nil {
		return Slide{}, ErrNoSelection
	}
	if index < 0 || index >= len(s.slides) {
		return Slide{}, carousel.ErrSlideOutOfRange
	}
	return s.slides[index], nil
}

// Wait blocks until every fetch started so far has finished.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// LastSeen is the time of the last interaction.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) withCarousel(f func(*carousel.Controller) (carousel.State, error)) (carousel.State, error) {
	s.mu.Lock()
	s.touchLocked()
	c := s.carousel
	s.mu.Unlock()

	if c == nil {
		return carousel.State{}, ErrNoSelection
	}
	return f(c)
}

func (s *Session) carouselOptions() []carousel.Option {
	opts := []carousel.Option{carousel.WithInterval(s.opts.CarouselInterval)}
	return append(opts, s.opts.CarouselOptions...)
}

func (s *Session) touchLocked() {
	s.lastSeen = s.now()
}

func (s *Session) teardownLocked() {
	s.location = nil
	s.slides = nil
	if s.carousel != nil {
		s.carousel.Close()
		s.carousel = nil
	}
	s.invalidateLocked()
}

// invalidateLocked orphans every in-flight fetch.
func (s *Session) invalidateLocked() {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) refreshLocked() {
	s.invalidateLocked()

	loc := *s.location
	r := s.dateRange

	s.slides = make([]Slide, len(models.MetricKinds))
	for i, kind := range models.MetricKinds {
		s.slides[i] = Slide{Kind: kind, Status: StatusIdle, Series: series.Build(nil, kind)}
	}

	if !r.Complete() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	gen := s.generation

	for i, kind := range models.MetricKinds {
		s.slides[i].Status = StatusLoading

		key := models.QueryKey{Kind: kind, Location: loc, Range: r}
		s.inflight.Add(1)
		go func(i int, key models.QueryKey) {
			defer s.inflight.Done()
			s.fetch(ctx, gen, i, key)
		}(i, key)
	}
}

func (s *Session) fetch(ctx context.Context, gen uint64, i int, key models.QueryKey) {
	samples, err := s.repo.FetchSamples(ctx, key)

	var slide Slide
	if err != nil {
		slide = Slide{Kind: key.Kind, Status: StatusError, Error: "Error: " + err.Error(), Series: series.Build(nil, key.Kind)}
	} else {
		slide = Slide{Kind: key.Kind, Status: StatusReady, Series: series.Build(samples, key.Kind)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.l.Debug("discarding stale samples", map[string]any{
			"session": s.id,
			"kind":    key.Kind,
		})
		return
	}

	if err != nil {
		s.l.Warning("failed to fetch samples", map[string]any{
			"session": s.id,
			"kind":    key.Kind,
			"err":     err.Error(),
		})
	}

	s.slides[i] = slide
}

func (s *Session) viewLocked() View {
	v := View{
		ID: s.id,
		Range: RangeView{
			From: formatDay(s.dateRange.From),
			To:   formatDay(s.dateRange.To),
		},
	}

	if s.location == nil {
		return v
	}

	loc := *s.location
	v.Open = true
	v.Location = &loc
	v.Slides = append([]Slide(nil), s.slides...)
	if s.carousel != nil {
		st := s.carousel.State()
		v.Carousel = &st
	}
	return v
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}
