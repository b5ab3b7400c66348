package observability

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ticketsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Total number of tickets opened",
		},
		[]string{"type"},
	)

	ticketsClosedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_closed_total",
			Help: "Total number of tickets closed",
		},
		[]string{"type"},
	)

	ticketsSweptTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_swept_total",
			Help: "Total number of orphaned pending tickets removed by the sweeper",
		},
		[]string{"type"},
	)

	ticketFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_failures_total",
			Help: "Total number of failed ticket operations by step",
		},
		[]string{"step"},
	)

	registerOnce sync.Once
)

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ticketsCreatedTotal,
			ticketsClosedTotal,
			ticketsSweptTotal,
			ticketFailuresTotal,
		)
	})
}

// Serve exposes the Prometheus metrics endpoint until the context ends.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("metrics server shutdown failed")
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RecordTicketCreated counts a successfully opened ticket
func RecordTicketCreated(ticketType string) {
	ticketsCreatedTotal.WithLabelValues(ticketType).Inc()
}

// RecordTicketClosed counts a successfully closed ticket
func RecordTicketClosed(ticketType string) {
	ticketsClosedTotal.WithLabelValues(ticketType).Inc()
}

// RecordTicketSwept counts an orphaned pending ticket removed by the sweeper
func RecordTicketSwept(ticketType string) {
	ticketsSweptTotal.WithLabelValues(ticketType).Inc()
}

// RecordTicketFailure counts a failed ticket operation step
func RecordTicketFailure(step string) {
	ticketFailuresTotal.WithLabelValues(step).Inc()
}
