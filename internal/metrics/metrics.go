// Package metrics exposes trigger outcomes and translation latency in the
// Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/petems/triplespace/internal/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Recorder implements app.Metrics on its own registry
type Recorder struct {
	registry  *prometheus.Registry
	triggers  *prometheus.CounterVec
	translate *prometheus.HistogramVec
	entries   prometheus.Gauge
}

var _ app.Metrics = (*Recorder)(nil)

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		triggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "triplespace_triggers_total",
			Help: "Handled and dropped trigger pulses by outcome",
		}, []string{"outcome"}),
		translate: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "triplespace_translate_seconds",
			Help:    "Translator call latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"result"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "triplespace_pair_cache_entries",
			Help: "Keys held by the translation pair cache",
		}),
	}
	r.registry.MustRegister(r.triggers, r.translate, r.entries)
	return r
}

func (r *Recorder) ObserveOutcome(o app.Outcome) {
	r.triggers.WithLabelValues(o.String()).Inc()
}

func (r *Recorder) ObserveTranslate(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.translate.WithLabelValues(result).Observe(d.Seconds())
}

func (r *Recorder) SetCacheEntries(n int) {
	r.entries.Set(float64(n))
}

// Handler serves the registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
