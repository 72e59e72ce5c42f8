package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lingbao-market/client/internal/model"
)

// Source provides the current feed. *api.Client satisfies it.
type Source interface {
	GetFeed(ctx context.Context, sort string) ([]model.PriceItem, error)
}

// Update is the result of one poll cycle.
type Update struct {
	Cycle     int               // 1 for the first successful poll
	Items     []model.PriceItem // Full feed in API order
	New       []model.PriceItem // Items absent from the previous cycle; all items on cycle 1
	MaxPrice  float64
	NewHigh   bool // MaxPrice rose above the previous cycle's; never set on cycle 1
	FetchedAt time.Time
}

// Handler receives poll updates.
type Handler interface {
	HandleUpdate(u Update) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(Update) error

func (f HandlerFunc) HandleUpdate(u Update) error {
	return f(u)
}

// Config holds watcher configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 10s)
	Sort     string        // model.SortByPrice or model.SortByTime
	Timeout  time.Duration // Per-request timeout (default: 5s)
}

// DefaultConfig returns the feed page's polling behaviour.
func DefaultConfig() Config {
	return Config{
		Interval: 10 * time.Second,
		Sort:     model.SortByPrice,
		Timeout:  5 * time.Second,
	}
}

// Watcher periodically fetches the feed and reports changes.
type Watcher struct {
	cfg     Config
	source  Source
	handler Handler
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	cycle    int
	seen     map[string]struct{}
	maxPrice float64

	polls  atomic.Int64
	errors atomic.Int64
}

// New creates a new Watcher. Zero config fields take DefaultConfig values.
func New(cfg Config, source Source, handler Handler, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Sort == "" {
		cfg.Sort = def.Sort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Watcher{
		cfg:     cfg,
		source:  source,
		handler: handler,
		logger:  logger,
		seen:    make(map[string]struct{}),
	}
}

// Start begins the polling loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run()

	w.logger.Info("feed watcher started",
		"interval", w.cfg.Interval,
		"sort", w.cfg.Sort,
	)

	return nil
}

// Stop gracefully shuts down the watcher.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("feed watcher stopped",
			"polls", w.polls.Load(),
			"errors", w.errors.Load(),
		)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the number of successful fetches, and of failed fetches or
// handler calls, so far.
func (w *Watcher) Stats() (polls, errors int64) {
	return w.polls.Load(), w.errors.Load()
}

// run is the main polling loop.
func (w *Watcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	w.pollOnce()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.pollOnce()
		}
	}
}

// pollOnce runs one cycle from the loop. Failures are logged and counted.
func (w *Watcher) pollOnce() {
	start := time.Now()

	u, err := w.Poll(w.ctx)
	if err != nil {
		if w.ctx.Err() != nil {
			return
		}
		w.errors.Add(1)
		w.logger.Warn("failed to poll feed", "err", err)
		return
	}

	w.logger.Debug("poll cycle complete",
		"cycle", u.Cycle,
		"items", len(u.Items),
		"new", len(u.New),
		"max_price", u.MaxPrice,
		"new_high", u.NewHigh,
		"duration", time.Since(start),
	)

	if w.handler != nil {
		if err := w.handler.HandleUpdate(u); err != nil {
			// A handler cut short by shutdown is not a failure.
			if w.ctx.Err() != nil {
				return
			}
			w.errors.Add(1)
			w.logger.Warn("feed handler failed", "cycle", u.Cycle, "err", err)
		}
	}
}

// Poll fetches the feed once and diffs it against the previous cycle. A
// failed fetch leaves the previous cycle's state in place.
func (w *Watcher) Poll(ctx context.Context) (Update, error) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
	defer cancel()

	items, err := w.source.GetFeed(ctx, w.cfg.Sort)
	if err != nil {
		return Update{}, err
	}
	w.polls.Add(1)

	return w.diff(items, time.Now()), nil
}

func (w *Watcher) diff(items []model.PriceItem, now time.Time) Update {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cycle++
	u := Update{
		Cycle:     w.cycle,
		Items:     items,
		FetchedAt: now,
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := item.Key()
		if _, ok := w.seen[key]; !ok {
			if _, dup := seen[key]; !dup {
				u.New = append(u.New, item)
			}
		}
		seen[key] = struct{}{}
		if item.Price > u.MaxPrice {
			u.MaxPrice = item.Price
		}
	}

	u.NewHigh = w.cycle > 1 && u.MaxPrice > w.maxPrice
	w.maxPrice = u.MaxPrice
	w.seen = seen

	return u
}
