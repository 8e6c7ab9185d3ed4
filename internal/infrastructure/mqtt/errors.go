package mqtt

import "errors"

var (
	// ErrConnectionFailed means the broker could not be reached at startup.
	ErrConnectionFailed = errors.New("mqtt: broker connection failed")

	// ErrNotConnected is returned by Publish while the client is reconnecting
	// or after Close.
	ErrNotConnected = errors.New("mqtt: not connected")

	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrInvalidQoS rejects anything outside 0..2.
	ErrInvalidQoS = errors.New("mqtt: QoS must be 0, 1 or 2")

	ErrInvalidTopic = errors.New("mqtt: empty topic")
)
