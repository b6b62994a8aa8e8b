// Package mqtt implements ports.Presenter by publishing tick results as
// JSON messages to an MQTT broker, for consumption by a dashboard.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/farmsight/thermalmap/internal/domain"
	"github.com/farmsight/thermalmap/internal/ports"
)

// Config holds broker and payload parameters.
type Config struct {
	BrokerURL string
	ClientID  string
	Topic     string

	// RawRange and InterpolatedRange are the display clamp bands applied
	// to the published grids. The interpolated band is wider on the low
	// end because cubic interpolation can undershoot near the edges of a
	// non-uniform grid.
	RawRange          domain.Range
	InterpolatedRange domain.Range
}

// Presenter publishes one message per tick at QoS 1.
type Presenter struct {
	client      paho.Client
	topic       string
	rawRange    domain.Range
	interpRange domain.Range
	logger      ports.Logger
}

// framePayload is the published message shape.
type framePayload struct {
	CapturedAt   time.Time                                       `json:"captured_at"`
	Degraded     bool                                            `json:"degraded"`
	Raw          [domain.GridSize][domain.GridSize]float64       `json:"raw"`
	Interpolated [domain.SurfaceSize][domain.SurfaceSize]float64 `json:"interpolated"`
}

// NewPresenter connects to the broker. A connection failure is fatal to
// startup, mirroring the transport open policy.
func NewPresenter(cfg Config, logger ports.Logger) (*Presenter, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %s: %w", cfg.BrokerURL, token.Error())
	}

	logger.Info("connected to mqtt broker",
		ports.String("broker", cfg.BrokerURL),
		ports.String("topic", cfg.Topic),
	)

	return &Presenter{
		client:      client,
		topic:       cfg.Topic,
		rawRange:    cfg.RawRange,
		interpRange: cfg.InterpolatedRange,
		logger:      logger,
	}, nil
}

// Render publishes the tick result with both channels clamped to their
// display bands. A publish failure is returned to the scheduler and
// contained there.
func (p *Presenter) Render(ctx context.Context, result domain.TickResult) error {
	payload := framePayload{
		CapturedAt:   result.Raw.CapturedAt,
		Degraded:     result.Degraded,
		Raw:          result.Raw.Values,
		Interpolated: result.Interpolated.Values,
	}
	for i := range payload.Raw {
		for j, v := range payload.Raw[i] {
			payload.Raw[i][j] = p.rawRange.Clamp(v)
		}
	}
	for i := range payload.Interpolated {
		for j, v := range payload.Interpolated[i] {
			payload.Interpolated[i][j] = p.interpRange.Clamp(v)
		}
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, msg)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *Presenter) Close() {
	p.client.Disconnect(250)
}
