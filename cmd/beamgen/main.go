// beamgen replays a scripted sequence of BEAM frames against a receive node.
// It exists for bench testing: alongside clean telemetry and battery traffic
// it can emit corrupted, truncated, or dropped frames so the receive path's
// rejection and loss accounting can be exercised end to end.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ivsomov/beamlink/internal/beam"
	"github.com/ivsomov/beamlink/internal/observability"
	"github.com/ivsomov/beamlink/internal/transport"
)

type scenarioFile struct {
	Target   string        `toml:"target"`
	Interval string        `toml:"interval"`
	Repeat   int           `toml:"repeat"`
	Frames   []frameConfig `toml:"frames"`
}

type frameConfig struct {
	Kind        string `toml:"kind"` // telemetry | battery | raw
	Category    uint8  `toml:"category"`
	Priority    bool   `toml:"priority"`
	AckRequired bool   `toml:"ack_required"`

	Roll  float32 `toml:"roll"`
	Pitch float32 `toml:"pitch"`
	Yaw   float32 `toml:"yaw"`

	VoltageMV uint16 `toml:"voltage_mv"`
	CurrentMA uint16 `toml:"current_ma"`
	Percent   uint8  `toml:"percent"`

	PayloadHex string `toml:"payload_hex"`

	// Fault injection: flip-bit | truncate | oversize-length | drop
	Fault string `toml:"fault"`
}

type scenario struct {
	target   string
	interval time.Duration
	repeat   int
	frames   []frameConfig
}

func main() {
	configPath := flag.String("config", "cmd/beamgen/scenario.toml", "path to the scenario file")
	target := flag.String("target", "", "override the scenario target address")
	flag.Parse()

	if err := run(*configPath, *target); err != nil {
		fmt.Fprintf(os.Stderr, "beamgen: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, targetOverride string) error {
	sc, err := loadScenario(configPath)
	if err != nil {
		return err
	}
	if targetOverride != "" {
		sc.target = targetOverride
	}

	logger := observability.InitLogger("beamgen")

	sender, err := transport.Dial(sc.target)
	if err != nil {
		return fmt.Errorf("dial target: %w", err)
	}
	defer sender.Close()

	logger.Info().
		Str("target", sc.target).
		Int("frames", len(sc.frames)).
		Int("repeat", sc.repeat).
		Msg("scenario start")

	seq := uint8(0)
	for round := 0; round < sc.repeat; round++ {
		for i, fc := range sc.frames {
			if err := emit(sender, fc, seq); err != nil {
				return fmt.Errorf("frame %d round %d: %w", i, round, err)
			}
			// Dropped frames still consume a sequence number so the
			// receiver observes a gap.
			seq++
			if sc.interval > 0 {
				time.Sleep(sc.interval)
			}
		}
	}

	logger.Info().Msg("scenario complete")
	return nil
}

func loadScenario(path string) (scenario, error) {
	var raw scenarioFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return scenario{}, fmt.Errorf("load scenario: %w", err)
	}

	sc := scenario{
		target:   "127.0.0.1:7373",
		interval: 100 * time.Millisecond,
		repeat:   1,
		frames:   raw.Frames,
	}
	if meta.IsDefined("target") && raw.Target != "" {
		sc.target = raw.Target
	}
	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return scenario{}, fmt.Errorf("parse interval: %w", err)
		}
		sc.interval = d
	}
	if meta.IsDefined("repeat") && raw.Repeat > 0 {
		sc.repeat = raw.Repeat
	}
	if len(sc.frames) == 0 {
		return scenario{}, fmt.Errorf("scenario has no frames")
	}
	return sc, nil
}

func emit(sender *transport.Sender, fc frameConfig, seq uint8) error {
	if fc.Fault == "drop" {
		return nil
	}

	frame, err := buildFrame(fc, seq)
	if err != nil {
		return err
	}
	wire, err := beam.Append(frame, nil)
	if err != nil {
		return err
	}

	switch fc.Fault {
	case "":
	case "flip-bit":
		wire[len(wire)-1] ^= 0x01
	case "truncate":
		wire = wire[:len(wire)-1]
	case "oversize-length":
		wire[3] = beam.MaxPayloadSize + 1
	default:
		return fmt.Errorf("unknown fault %q", fc.Fault)
	}

	return sender.SendRaw(wire)
}

func buildFrame(fc frameConfig, seq uint8) (beam.Frame, error) {
	var flags beam.Flags
	if fc.Priority {
		flags |= beam.FlagPriority
	}
	if fc.AckRequired {
		flags |= beam.FlagAckRequired
	}

	switch fc.Kind {
	case "telemetry":
		return beam.NewTelemetryFrame(seq, flags, fc.Roll, fc.Pitch, fc.Yaw), nil
	case "battery":
		return beam.NewBatteryFrame(seq, flags, fc.VoltageMV, fc.CurrentMA, fc.Percent), nil
	case "raw":
		payload, err := hex.DecodeString(fc.PayloadHex)
		if err != nil {
			return beam.Frame{}, fmt.Errorf("decode payload_hex: %w", err)
		}
		return beam.NewRawFrame(beam.MsgCategory(fc.Category), seq, flags, payload)
	default:
		return beam.Frame{}, fmt.Errorf("unknown frame kind %q", fc.Kind)
	}
}
