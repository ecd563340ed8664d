package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/powerplan/api/plan"
	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/core/dispatch"
	corehistory "github.com/kilianp07/powerplan/core/history"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	infrahistory "github.com/kilianp07/powerplan/infra/history"
	"github.com/kilianp07/powerplan/infra/logger"
	"github.com/kilianp07/powerplan/infra/metrics"
	"github.com/kilianp07/powerplan/infra/mqtt"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Service orchestrates the plan manager, the HTTP API and the connectors.
type Service struct {
	Manager *dispatch.Manager
	store   corehistory.Store
	bus     *eventbus.Bus[dispatch.Solved]
	conn    *mqtt.Connector
	cfg     *config.Config
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var store corehistory.Store
	switch cfg.History.Backend {
	case "sqlite":
		s, err := infrahistory.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		store = s
	default:
		store = corehistory.NewMemoryStore()
	}

	bus := eventbus.New[dispatch.Solved]()
	manager := dispatch.NewManager(sink, bus, logg)

	svc := &Service{Manager: manager, store: store, bus: bus, cfg: cfg, log: logg}
	if cfg.MQTT.Enabled {
		conn, err := mqtt.NewConnector(cfg.MQTT, manager, logger.New("mqtt-connector"))
		if err != nil {
			return nil, fmt.Errorf("mqtt connector: %w", err)
		}
		svc.conn = conn
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	sub := s.bus.Subscribe()
	go s.consume(sub)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/productionplan", plan.NewPlanHandler(s.Manager))
	mux.Handle("/api/plans", plan.NewHistoryHandler(s.store, s.cfg.API.Token))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
		cancel()
	}()

	s.log.Infof("serving production plans on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// consume drains solved events into the history store until the bus closes.
func (s *Service) consume(sub <-chan dispatch.Solved) {
	for solved := range sub {
		if err := s.store.Append(context.Background(), solved.Record); err != nil {
			s.log.Errorf("history append: %v", err)
		}
	}
}

// Close releases the connectors and the history store.
func (s *Service) Close() error {
	s.bus.Close()
	if s.conn != nil {
		s.conn.Close()
	}
	return s.store.Close()
}
