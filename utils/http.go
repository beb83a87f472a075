package utils

import (
	"net/http"
	"time"
)

// HTTPClient is the shared client for outbound service-to-service calls
// (notifier forwarding). Event payloads are tiny; keep the timeout short.
var HTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}
