// Package influxdb writes recipe activity points to InfluxDB 2.x.
//
// One point is written per committed change:
//
//	recipe_activity,action=created,entity=component count=1i
//
// Writes are blocking so the caller sees the error, but the notifier that
// drives this package only logs them; an InfluxDB outage never fails an API
// request. The client is safe for concurrent use.
package influxdb
