package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/lingbao-market/client/internal/api"
	"github.com/lingbao-market/client/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedSource returns one canned response per call, repeating the last.
type scriptedSource struct {
	mu    sync.Mutex
	steps []step
	calls int
	sorts []string
}

type step struct {
	items []model.PriceItem
	err   error
}

func (s *scriptedSource) GetFeed(ctx context.Context, sort string) ([]model.PriceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sorts = append(s.sorts, sort)
	i := s.calls
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	s.calls++
	return s.steps[i].items, s.steps[i].err
}

func item(code string, price float64, ts int64) model.PriceItem {
	return model.PriceItem{Code: code, Price: price, Server: "S1", Timestamp: ts}
}

func TestWatcher_Poll(t *testing.T) {
	a := item("AAA111", 300, 1)
	b := item("BBB222", 500, 2)
	c := item("CCC333", 950, 3)
	aRelisted := item("AAA111", 300, 4)

	src := &scriptedSource{steps: []step{
		{items: []model.PriceItem{b, a}},
		{items: []model.PriceItem{b, a}},
		{err: errors.New("boom")},
		{items: []model.PriceItem{c, b, aRelisted}},
		{items: []model.PriceItem{b}},
	}}
	w := New(Config{Sort: model.SortByTime}, src, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		wantErr   bool
		wantCycle int
		wantNew   []model.PriceItem
		wantMax   float64
		wantHigh  bool
	}{
		{name: "first cycle reports everything", wantCycle: 1, wantNew: []model.PriceItem{b, a}, wantMax: 500},
		{name: "unchanged feed", wantCycle: 2, wantMax: 500},
		{name: "fetch error keeps state", wantErr: true},
		{name: "new listing and relist", wantCycle: 3, wantNew: []model.PriceItem{c, aRelisted}, wantMax: 950, wantHigh: true},
		{name: "max drops", wantCycle: 4, wantMax: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := w.Poll(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Poll() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Poll() unexpected error: %v", err)
			}
			if u.Cycle != tt.wantCycle {
				t.Errorf("Cycle = %d, want %d", u.Cycle, tt.wantCycle)
			}
			if diff := cmp.Diff(tt.wantNew, u.New); diff != "" {
				t.Errorf("New mismatch (-want +got):\n%s", diff)
			}
			if u.MaxPrice != tt.wantMax {
				t.Errorf("MaxPrice = %v, want %v", u.MaxPrice, tt.wantMax)
			}
			if u.NewHigh != tt.wantHigh {
				t.Errorf("NewHigh = %v, want %v", u.NewHigh, tt.wantHigh)
			}
			if u.FetchedAt.IsZero() {
				t.Error("FetchedAt not set")
			}
		})
	}

	if src.sorts[0] != model.SortByTime {
		t.Errorf("sort = %q, want %q", src.sorts[0], model.SortByTime)
	}
	if polls, _ := w.Stats(); polls != 4 {
		t.Errorf("polls = %d, want 4", polls)
	}
}

func TestWatcher_NoHighOnFirstCycle(t *testing.T) {
	src := &scriptedSource{steps: []step{{items: []model.PriceItem{item("TOP999", 999, 1)}}}}
	w := New(Config{}, src, nil, nil)

	u, err := w.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() unexpected error: %v", err)
	}
	if u.NewHigh {
		t.Error("NewHigh = true on first cycle")
	}
	if src.sorts[0] != model.SortByPrice {
		t.Errorf("default sort = %q, want %q", src.sorts[0], model.SortByPrice)
	}
}

func TestWatcher_DuplicateKeysReportedOnce(t *testing.T) {
	x := item("DUP123", 10, 7)
	src := &scriptedSource{steps: []step{{items: []model.PriceItem{x, x}}}}
	w := New(Config{}, src, nil, nil)

	u, err := w.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() unexpected error: %v", err)
	}
	if len(u.New) != 1 {
		t.Errorf("len(New) = %d, want 1", len(u.New))
	}
}

func TestWatcher_StartStop(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/api/v1/feed" {
			t.Errorf("path = %q, want /api/v1/feed", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]model.PriceItem{item("LIVE01", 120, 1)})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "", api.WithHTTPClient(server.Client()), api.WithRetries(0, 0))

	updates := make(chan Update, 16)
	handler := HandlerFunc(func(u Update) error {
		select {
		case updates <- u:
		default:
		}
		return nil
	})

	w := New(Config{Interval: 10 * time.Millisecond, Timeout: time.Second}, client, handler, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case u := <-updates:
		if u.Cycle != 1 || len(u.New) != 1 || u.New[0].Code != "LIVE01" {
			t.Errorf("first update = %+v", u)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first update")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()

	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if requests.Load() < 1 {
		t.Error("expected at least one request")
	}
}

func TestWatcher_ErrorsCounted(t *testing.T) {
	src := &scriptedSource{steps: []step{{err: errors.New("unavailable")}}}
	handled := make(chan struct{}, 1)
	w := New(Config{Interval: time.Hour}, src, HandlerFunc(func(Update) error {
		handled <- struct{}{}
		return nil
	}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.ctx = ctx

	w.pollOnce()
	w.pollOnce()

	if _, errs := w.Stats(); errs != 2 {
		t.Errorf("errors = %d, want 2", errs)
	}
	select {
	case <-handled:
		t.Error("handler called for failed poll")
	default:
	}
}

func TestWatcher_HandlerErrorCounted(t *testing.T) {
	src := &scriptedSource{steps: []step{{items: []model.PriceItem{item("ABC", 5, 1)}}}}
	w := New(Config{}, src, HandlerFunc(func(Update) error {
		return errors.New("sink full")
	}), nil)
	w.ctx = context.Background()

	w.pollOnce()

	polls, errs := w.Stats()
	if polls != 1 || errs != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", polls, errs)
	}
}

func TestWatcher_HandlerErrorDuringShutdown(t *testing.T) {
	src := &scriptedSource{steps: []step{{items: []model.PriceItem{item("ABC", 5, 1)}}}}
	w := New(Config{}, src, HandlerFunc(func(Update) error {
		return context.Canceled
	}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.ctx = ctx

	w.pollOnce()

	if _, errs := w.Stats(); errs != 0 {
		t.Errorf("errors = %d, want 0 after shutdown", errs)
	}
}
