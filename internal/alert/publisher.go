// Package alert publishes county risk escalations for downstream
// notification consumers. Alerts fire when a refresh moves a county into
// the High or Critical band; dashboards pull, alerting pushes.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jcurry/wa-firewatch/internal/config"
	"github.com/jcurry/wa-firewatch/internal/models"
)

// CountyAlert is the published payload.
type CountyAlert struct {
	County           string              `json:"county"`
	RiskScore        float64             `json:"risk_score"`
	RiskCategory     models.RiskCategory `json:"risk_category"`
	PreviousCategory models.RiskCategory `json:"previous_category,omitempty"`
	ClimateTrend     string              `json:"climate_trend,omitempty"`
	PopulationAtRisk float64             `json:"population_at_risk,omitempty"`
	AssessedAt       time.Time           `json:"assessed_at"`
}

// Publisher delivers county risk escalations.
type Publisher interface {
	Publish(ctx context.Context, alerts []CountyAlert) error
	Close() error
}

// KafkaPublisher produces alerts to a Kafka topic, keyed by county so a
// compacted topic retains the latest state per county.
type KafkaPublisher struct {
	writer *kafkago.Writer
}

func NewKafkaPublisher(cfg *config.Config) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Alerts.KafkaBrokers...),
		Topic:        cfg.Alerts.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, alerts []CountyAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(alerts))
	for i := range alerts {
		msg, err := serializeToMessage(alerts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(a CountyAlert) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize county alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.County),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_category", Value: []byte(a.RiskCategory)},
			{Key: "assessed_at", Value: []byte(a.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}

// NoopPublisher is used when no brokers are configured so the service
// runs standalone.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, alerts []CountyAlert) error { return nil }
func (NoopPublisher) Close() error                                            { return nil }

// New returns a Kafka publisher when brokers are configured and a no-op
// otherwise.
func New(cfg *config.Config) Publisher {
	if cfg.AlertsEnabled() {
		return NewKafkaPublisher(cfg)
	}
	return NoopPublisher{}
}
