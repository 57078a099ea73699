package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// TraceIDHeader carries the trace id between the client and the facade.
const TraceIDHeader = "X-Trace-ID"

// HTTPClient is a resty client that stamps every request with a trace id.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client for baseURL. Requests reuse the trace id
// stored in their context, or get a fresh one from ids.
func NewHTTPClient(baseURL string, timeout time.Duration, ids *UUIDGenerator) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(TraceIDHeader) != "" {
			return nil
		}
		traceID, ok := GetTraceIDFromContext(req.Context())
		if !ok {
			traceID = ids.Generate()
		}
		req.SetHeader(TraceIDHeader, traceID)
		return nil
	})

	return &HTTPClient{Client: client}
}
