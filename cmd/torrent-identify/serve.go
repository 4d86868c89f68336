package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/anacrolix/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/anacrolix/torrent-identify/webui"
)

var serveLogger = log.Default.WithNames("serve")

func handlerConfig(cmd *ServeCmd) (cfg webui.Config) {
	cfg.MaxUploadSize = cmd.MaxUploadSize.Int64()
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = webui.DefaultMaxUploadSize
	}
	cfg.RateLimit = rate.Limit(cmd.RateLimit)
	cfg.Burst = cmd.RateBurst
	cfg.Registry = prometheus.NewRegistry()
	cfg.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return
}

// Runs until ctx is done or the server fails.
func serve(ctx context.Context, cmd *ServeCmd) error {
	cfg := handlerConfig(cmd)
	srv := &http.Server{
		Handler:           webui.NewHandler(cfg, webui.NewHistory(cmd.HistorySize)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	l, err := net.Listen("tcp", cmd.Addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %q", cmd.Addr)
	}
	serveLogger.Levelf(
		log.Info, "serving on http://%v (max upload %v)",
		l.Addr(), humanize.Bytes(uint64(cfg.MaxUploadSize)))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.Serve(l)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving")
	})
	g.Go(func() error {
		<-ctx.Done()
		serveLogger.Levelf(log.Info, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
