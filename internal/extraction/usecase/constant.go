package usecase

import "time"

const (
	defaultCacheSize   = 256
	defaultCacheTTL    = 15 * time.Minute
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxSessions = 128

	// Inference defaults for extraction requests. Low temperature keeps
	// the model close to the JSON contract.
	defaultTemperature = 0.2
	defaultMaxTokens   = 2048
)
