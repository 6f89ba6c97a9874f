package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ivsomov/beamlink/internal/beam"
	"github.com/ivsomov/beamlink/internal/config"
	"github.com/ivsomov/beamlink/internal/link"
	"github.com/ivsomov/beamlink/internal/monitor"
	"github.com/ivsomov/beamlink/internal/observability"
	"github.com/ivsomov/beamlink/internal/transport"
)

func main() {
	configPath := flag.String("config", "beamd.toml", "path to the node config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "beamd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadNodeConfig(configPath)
	if err != nil {
		return err
	}

	logger := observability.InitLogger(cfg.NodeName)
	zerolog.SetGlobalLevel(observability.ParseLevel(cfg.LogLevel))
	observability.RegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := link.NewSession(cfg.NodeName,
		link.WithLogger(logger),
		link.WithHandler(func(f beam.Frame) {
			logFrame(logger, f)
		}),
		link.WithAckHandler(func(f beam.Frame) {
			// The transmit half of the radio link is outside this node;
			// ack requests are surfaced for the operator.
			logger.Info().Uint8("seq", f.Header.Seq).Stringer("category", f.Header.Category).Msg("ack requested")
		}),
	)

	datagrams := make(chan []byte, 256)
	listener, err := transport.Listen(ctx, cfg.ListenAddr, datagrams,
		transport.WithErrorHandler(func(err error) {
			logger.Error().Err(err).Msg("transport read error")
		}),
	)
	if err != nil {
		return err
	}
	logger.Info().Str("addr", listener.Addr().String()).Msg("listening for frames")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case dgram := <-datagrams:
				// Rejections are counted and logged inside the session.
				_, _ = session.Feed(dgram)
			}
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("monitor listening")
	return monitor.New(cfg.NodeName, cfg.HTTPAddr, session, cfg.CorsOrigins).Run(ctx)
}

func logFrame(logger zerolog.Logger, f beam.Frame) {
	switch f.Payload.Kind {
	case beam.KindTelemetry:
		logger.Info().
			Uint8("seq", f.Header.Seq).
			Float32("roll", f.Payload.Telemetry.Roll).
			Float32("pitch", f.Payload.Telemetry.Pitch).
			Float32("yaw", f.Payload.Telemetry.Yaw).
			Msg("telemetry")
	case beam.KindBattery:
		logger.Info().
			Uint8("seq", f.Header.Seq).
			Uint16("voltage_mv", f.Payload.Battery.VoltageMV).
			Uint16("current_ma", f.Payload.Battery.CurrentMA).
			Uint8("percent", f.Payload.Battery.Percent).
			Msg("battery")
	default:
		logger.Debug().
			Uint8("seq", f.Header.Seq).
			Stringer("category", f.Header.Category).
			Int("bytes", len(f.Payload.Raw)).
			Msg("raw payload")
	}
}
