package influxdb

import (
	"context"
	"fmt"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// ActivityMeasurement is the measurement recipe changes are written to.
const ActivityMeasurement = "recipe_activity"

// WriteActivity records one change to the recipe tree.
//
// Example:
//
//	client.WriteActivity(ctx, "step", "deleted", time.Now())
func (c *Client) WriteActivity(ctx context.Context, entity, action string, ts time.Time) error {
	return c.WritePoint(ctx, ActivityMeasurement,
		map[string]string{
			"entity": entity,
			"action": action,
		},
		map[string]any{
			"count": int64(1),
		},
		ts,
	)
}

// WritePoint writes a custom point and waits for the server to accept it.
func (c *Client) WritePoint(ctx context.Context, measurement string, tags map[string]string, fields map[string]any, ts time.Time) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	point := write.NewPoint(measurement, tags, fields, ts)
	if err := c.writer.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, measurement, err)
	}
	return nil
}
