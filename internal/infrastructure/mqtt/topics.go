package mqtt

import "strings"

// DefaultTopicPrefix is used when the configuration leaves the prefix empty.
const DefaultTopicPrefix = "recipes"

// Topics builds topic names under a common prefix.
//
//	topics := mqtt.NewTopics("recipes")
//	topics.Event("step", "42") // "recipes/events/step/42"
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix. Surrounding slashes are trimmed.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the root of every topic.
func (t Topics) Prefix() string {
	if t.prefix == "" {
		return DefaultTopicPrefix
	}
	return t.prefix
}

// Event returns the topic for a change to one entity.
//
// Example: recipes/events/component/3f2a...
func (t Topics) Event(entity, id string) string {
	return t.Prefix() + "/events/" + entity + "/" + id
}

// AllEvents matches every change event.
func (t Topics) AllEvents() string {
	return t.Prefix() + "/events/#"
}

// EntityEvents matches every change to one entity type.
func (t Topics) EntityEvents(entity string) string {
	return t.Prefix() + "/events/" + entity + "/+"
}

// SystemStatus returns the retained online/offline status topic.
func (t Topics) SystemStatus() string {
	return t.Prefix() + "/system/status"
}
