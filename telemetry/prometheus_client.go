package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Binds the metrics address so a bad address fails before any work starts.
func Listen(addr string) (net.Listener, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener on %q: %w", addr, err)
	}
	return lis, nil
}

// Serves /metrics on lis until ctx is done or the server fails.
func Serve(ctx context.Context, lis net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(lis)
	}()
	log.WithField("Address", lis.Addr().String()).Info("telemetry: serving metrics")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("telemetry: metrics server shutdown")
			return err
		}
		<-served
		return nil
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.WithError(err).Error("telemetry: metrics server stopped")
		return err
	}
}

// Binds addr and serves the metrics until ctx is done. Blocks.
func StartClient(ctx context.Context, addr string) error {
	lis, err := Listen(addr)
	if err != nil {
		return err
	}
	return Serve(ctx, lis)
}
