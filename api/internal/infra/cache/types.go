package cache

import "sync"

// Maps for cache
var (
	QrCodeMap sync.Map
)

// cache
var (
	WithdrawalRateLimitsCache = InitStorage()
)
