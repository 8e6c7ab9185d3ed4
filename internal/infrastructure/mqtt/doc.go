// Package mqtt publishes recipe change events.
//
// The client connects with auto-reconnect and registers a retained
// last-will on {prefix}/system/status, so subscribers learn when the service
// goes away. Change events go to {prefix}/events/{entity}/{id} and carry ids
// and the action only, never recipe content.
//
// Publishing is one-way: the service never subscribes.
package mqtt
