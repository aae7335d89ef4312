package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// context keys for attaching request metadata
type payloadContextKey struct{}

// redactedHeaders never reach the log output.
var redactedHeaders = map[string]bool{
	"authorization":  true,
	"apikey":         true,
	"x-goog-api-key": true,
}

type logTransport struct {
	transport  http.RoundTripper
	logPayload bool
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Any("headers", redactHeaders(req.Header)),
	}

	if t.logPayload {
		if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
			fields = append(fields, zap.Int("payload_bytes", len(payload)))
		}
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed",
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response",
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if redactedHeaders[strings.ToLower(key)] {
			out[key] = "[redacted]"
			continue
		}
		out[key] = strings.Join(values, ",")
	}
	return out
}

// WithRequestLogging wraps the HTTP transport with debug logging of method, URL,
// headers (credentials redacted), payload size and response status.
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport:  rt,
			logPayload: true,
		}
	})
}
