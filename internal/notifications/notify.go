// Package notifications runs the per-minute evaluation engine and delivers
// the notifications it produces to the push gateway.
//
// Pipeline: cron tick → evaluate every user's policies → fan out sends →
// log the batch. Delivery is best effort: failures are logged, never retried.
package notifications

import "time"

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultDispatchTimeout     = 10 * time.Second
	defaultDispatchConcurrency = 8
	gatewayErrorBodyLimit      = 200
)

// pushExtraData is attached to every push so the app can tell our messages apart.
var pushExtraData = map[string]string{"extra": "info"}
