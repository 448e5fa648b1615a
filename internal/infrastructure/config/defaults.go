package config

import "time"

const (
	DefaultBackoffUnit    = time.Second
	DefaultRequestTimeout = 20 * time.Second
	DefaultNotifyTimeout  = 20 * time.Second
	DefaultLookbackDays   = 7
	DefaultUserAgent      = "fxrates-watch/1.0"
)
