package influxdb

import "errors"

// Activity writes fail with one of these, wrapped with the underlying cause.
var (
	ErrDisabled         = errors.New("influxdb: activity recording disabled")
	ErrConnectionFailed = errors.New("influxdb: server unreachable")
	ErrNotConnected     = errors.New("influxdb: client closed")
	ErrWriteFailed      = errors.New("influxdb: activity point rejected")
)
