// Package timeutil provides timestamp helpers shared by the Phoenix services.
package timeutil

import "time"

// UTCTimestamp returns the current UTC time in RFC 3339 format with
// sub-second precision.
func UTCTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
