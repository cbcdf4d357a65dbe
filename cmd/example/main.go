// Command example wires a bus together with the config, logging, metrics,
// and tracing packages. It simulates a small order pipeline on a ticker,
// serves /metrics over fasthttp, and shuts down on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/typebusio/typebus/pkg/config"
	"github.com/typebusio/typebus/pkg/eventbus"
	"github.com/typebusio/typebus/pkg/logger"
	busotel "github.com/typebusio/typebus/pkg/observability/otel"
	busprom "github.com/typebusio/typebus/pkg/observability/prometheus"
)

// OrderCreated and PaymentReceived are the demo's message types.
type OrderCreated struct {
	ID string
}

type PaymentReceived struct {
	OrderID string
	Amount  int
}

func main() {
	configPath := flag.String("config", "", "path to a YAML bus configuration file")
	flag.Parse()

	cfg := config.DefaultBusConfig()
	if *configPath != "" {
		if err := config.LoadYAML(*configPath, &cfg); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	lg := logger.NewLogger(logger.Config{
		JSONOutput: cfg.Log.JSON,
		Level:      cfg.Log.Level,
	})

	metrics := busprom.NewMetrics(cfg.Metrics.Namespace)
	if err := metrics.Register(busprom.DefaultRegistry); err != nil {
		log.Fatalf("register metrics: %v", err)
	}

	if cfg.Tracing.Enabled {
		err := busotel.Initialize(context.Background(), busotel.Config{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: cfg.Tracing.ServiceVersion,
			Exporter:       cfg.Tracing.Exporter,
			Endpoint:       cfg.Tracing.Endpoint,
			Environment:    "development",
			SampleRate:     cfg.Tracing.SampleRate,
		})
		if err != nil {
			log.Fatalf("initialize tracing: %v", err)
		}
		defer busotel.Shutdown(context.Background())
	}

	b := eventbus.NewWithConfig(eventbus.Config{
		PendingCapacity: cfg.PendingCapacity,
		Logger:          lg,
		Hooks:           metrics,
	})

	l := eventbus.NewListener(b)
	defer l.Close()

	eventbus.Listen(l, func(e OrderCreated) {
		lg.WithFields(map[string]interface{}{"order_id": e.ID}).Info("order created")
	})
	eventbus.Listen(l, func(e PaymentReceived) {
		lg.WithFields(map[string]interface{}{
			"order_id": e.OrderID,
			"amount":   e.Amount,
		}).Info("payment received")
		// Deferred follow-up: picked up by the next Process tick.
		eventbus.Post(b, OrderCreated{ID: e.OrderID + "-followup"})
	})

	if cfg.Metrics.Enabled {
		handler := busprom.FastHTTPHandler()
		go func() {
			srv := &fasthttp.Server{
				Handler: func(ctx *fasthttp.RequestCtx) {
					if string(ctx.Path()) == cfg.Metrics.Path {
						handler(ctx)
						return
					}
					ctx.SetStatusCode(fasthttp.StatusNotFound)
				},
			}
			if err := srv.ListenAndServe(cfg.Metrics.Listen); err != nil {
				log.Fatalf("metrics server failed: %v", err)
			}
		}()
		lg.Info("metrics listening on ", cfg.Metrics.Listen, cfg.Metrics.Path)
	}

	// The bus is single-threaded: all dispatch happens on this goroutine.
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ctx := context.Background()
	seq := 0
	for {
		select {
		case <-ticker.C:
			seq++
			id := time.Now().UTC().Format("20060102T150405")
			busotel.ImmediateWithSpan(ctx, b, OrderCreated{ID: id})
			busotel.PostWithSpan(ctx, b, PaymentReceived{OrderID: id, Amount: seq * 10})
			busotel.ProcessWithSpan(ctx, b)

			if seq%10 == 0 {
				stats := b.Stats()
				lg.WithFields(map[string]interface{}{
					"types":     stats.MessageTypes,
					"callbacks": stats.Callbacks,
					"pending":   stats.PendingMessages,
				}).Info("bus stats")
			}
		case <-quit:
			lg.Info("shutting down")
			return
		}
	}
}
