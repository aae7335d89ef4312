package common

import (
	"github.com/futig/scopeguard/internal/config"
	pkgHTTP "github.com/futig/scopeguard/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a JSON connector for baseURL with the timeouts from
// cfg and logging. extra adds service-specific transports such as API key headers.
func NewBaseConnector(baseURL string, cfg config.HTTPClientConfig, logger *zap.Logger, extra ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: baseURL,
	}

	opts := []pkgHTTP.HttpOpts{
		// First wrapper sits closest to the wire, so it logs the final headers.
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
	}
	opts = append(opts, extra...)

	return pkgHTTP.NewConnector(connCfg, opts...)
}
