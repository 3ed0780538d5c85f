package auth

import "time"

// Clock returns the current time. Tests inject a fake.
type Clock func() time.Time

func nowUTC() time.Time {
	return time.Now().UTC()
}

func orDefaultClock(c Clock) Clock {
	if c == nil {
		return nowUTC
	}
	return c
}
