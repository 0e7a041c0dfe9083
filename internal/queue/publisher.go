// Package queue publishes fetched-record events for downstream consumers
// (the chat front end, notifiers). Events carry the plain-data projection of
// a record; nothing is read back, nothing is persisted by this service.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
)

const (
	StreamVideoEvents = "VIDEO_EVENTS"

	SubjectVideoFetched   = "video.fetched"
	SubjectListingFetched = "video.listing"
)

type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func Connect(url string) (*Publisher, error) {
	log := logger.Log

	opts := []nats.Option{
		nats.Name("hanime-scraper"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Warn().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Error().Err(err).Msg("nats disconnected")
			}
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	p := &Publisher{nc: nc, js: js}
	if err := p.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	log.Info().Str("url", url).Msg("nats connected")
	return p, nil
}

func (p *Publisher) ensureStream(ctx context.Context) error {
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamVideoEvents,
		Subjects:    []string{"video.>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Discard:     jetstream.DiscardOld,
		MaxMsgs:     100000,
		Description: "Fetched video metadata events",
	})
	return err
}

func (p *Publisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if _, err := p.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) PublishVideoFetched(ctx context.Context, video any) error {
	return p.Publish(ctx, SubjectVideoFetched, video)
}

func (p *Publisher) PublishListingFetched(ctx context.Context, listing any) error {
	return p.Publish(ctx, SubjectListingFetched, listing)
}

func (p *Publisher) Close() {
	p.nc.Close()
}
