package services

import "time"

// clock returns the current time in UTC. Stored timestamps are compared
// lexically by some drivers, so every service writes UTC.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
