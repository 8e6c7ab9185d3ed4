// Package notify fans committed recipe changes out to MQTT and InfluxDB.
//
// Every notifier implements recipe.Notifier. Failures are returned so the
// caller can log them; they never roll back the change that produced them.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/mqtt"
	"github.com/nerrad567/recipe-manager/internal/recipe"
)

// eventPublisher is the part of *mqtt.Client the MQTT notifier uses.
type eventPublisher interface {
	PublishJSON(topic string, v any) error
}

// MQTT publishes each event to {prefix}/events/{entity}/{id}.
type MQTT struct {
	pub    eventPublisher
	topics mqtt.Topics
}

// NewMQTT creates an MQTT notifier on a connected client.
func NewMQTT(client *mqtt.Client) *MQTT {
	return &MQTT{pub: client, topics: client.Topics()}
}

// Notify publishes ev as JSON.
func (n *MQTT) Notify(_ context.Context, ev recipe.Event) error {
	return n.pub.PublishJSON(n.topics.Event(ev.Entity, ev.ID), ev)
}

// activityWriter is the part of *influxdb.Client the Influx notifier uses.
type activityWriter interface {
	WriteActivity(ctx context.Context, entity, action string, ts time.Time) error
}

// Influx counts each event as a recipe_activity point.
type Influx struct {
	w activityWriter
}

// NewInflux creates an InfluxDB notifier. client is usually *influxdb.Client.
func NewInflux(client activityWriter) *Influx {
	return &Influx{w: client}
}

// Notify writes one activity point for ev.
func (n *Influx) Notify(ctx context.Context, ev recipe.Event) error {
	return n.w.WriteActivity(ctx, ev.Entity, ev.Action, ev.Timestamp)
}

// Fanout delivers each event to every notifier and joins their errors.
type Fanout []recipe.Notifier

// Notify calls every notifier even when an earlier one fails.
func (f Fanout) Notify(ctx context.Context, ev recipe.Event) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
