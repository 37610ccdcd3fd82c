package infra

import (
	"time"

	"github.com/imroc/req/v3"
)

// ProvideHTTPClient creates the shared client for calls to the entry
// management server. Idempotent catalog reads ride the common retry
// budget; the judge request opts out per-request since it writes the
// audit log.
func ProvideHTTPClient() *req.Client {
	return req.C().
		SetTimeout(10 * time.Second).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(3 * time.Second)
}
