package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lingbao-market/client/internal/feed"
	"github.com/lingbao-market/client/internal/model"
)

const feedStopTimeout = 5 * time.Second

func newFeedCmd(a *app) *cobra.Command {
	var (
		sort     string
		interval time.Duration
		once     bool
		cycles   int
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the live price feed",
		Long: `Print the live price feed.

By default the feed is polled until interrupted; each cycle prints the listings
that were not there before and marks a new high price. Use --once to print the
current feed and exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := feed.Config{
				Interval: a.cfg.Feed.Interval,
				Sort:     a.cfg.Feed.Sort,
				Timeout:  a.cfg.Feed.Timeout,
			}
			if sort != "" {
				if !model.ValidSort(sort) {
					return fmt.Errorf("--sort must be %q or %q, got %q", model.SortByTime, model.SortByPrice, sort)
				}
				cfg.Sort = sort
			}
			if interval > 0 {
				cfg.Interval = interval
			}

			if once {
				w := feed.New(cfg, a.client, nil, a.logger)
				u, err := w.Poll(cmd.Context())
				if err != nil {
					return err
				}
				printItems(cmd.OutOrStdout(), u.Items)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchFeed(ctx, a, cfg, cmd.OutOrStdout(), cycles)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "Sort order: time or price (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default from config)")
	cmd.Flags().BoolVar(&once, "once", false, "Print the feed once and exit")
	cmd.Flags().IntVar(&cycles, "cycles", 0, "Stop after this many updates (0 = until interrupted)")

	return cmd
}

// watchFeed runs the watcher and a printer side by side until ctx ends or
// the requested number of updates has been printed.
func watchFeed(ctx context.Context, a *app, cfg feed.Config, out io.Writer, cycles int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	updates := make(chan feed.Update)

	w := feed.New(cfg, a.client, feed.HandlerFunc(func(u feed.Update) error {
		select {
		case updates <- u:
			return nil
		case <-gctx.Done():
			// Stopping; the update is dropped on purpose.
			return nil
		}
	}), a.logger)

	g.Go(func() error {
		if err := w.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), feedStopTimeout)
		defer stopCancel()
		return w.Stop(stopCtx)
	})

	g.Go(func() error {
		printed := 0
		for {
			select {
			case <-gctx.Done():
				return nil
			case u := <-updates:
				printUpdate(out, u)
				printed++
				if cycles > 0 && printed >= cycles {
					cancel()
					return nil
				}
			}
		}
	})

	return g.Wait()
}

func printUpdate(out io.Writer, u feed.Update) {
	stamp := u.FetchedAt.Format("15:04:05")
	if u.NewHigh {
		fmt.Fprintf(out, "[%s] new high: %v\n", stamp, u.MaxPrice)
	}
	if len(u.New) == 0 {
		return
	}
	fmt.Fprintf(out, "[%s] %d new of %d listings\n", stamp, len(u.New), len(u.Items))
	printItems(out, u.New)
}

func printItems(out io.Writer, items []model.PriceItem) {
	for _, item := range items {
		mark := ""
		if item.IsHot() {
			mark = " *"
		}
		listed := time.UnixMilli(item.Timestamp).Format("01-02 15:04")
		fmt.Fprintf(out, "%-12s %4v  %-3s %s%s\n", item.Code, item.Price, item.Server, listed, mark)
	}
}
