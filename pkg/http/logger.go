package http

// HTTPLogger defines hooks for logging outbound HTTP requests and responses.
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed.
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called after receiving a successful response (non-error HTTP status).
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after receiving an error response or transport failure.
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when backoff is configured and a retry attempt is about to be made.
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}
