package app

import (
	"github.com/Adda-Baaj/simple-uber/internal/config"
	"github.com/Adda-Baaj/simple-uber/internal/logger"
	"github.com/Adda-Baaj/simple-uber/pkg/httpclient"
	"github.com/Adda-Baaj/simple-uber/pkg/uber"
)

const userAgent = "simple-uber/1.0"

// NewAPIClient builds the ride API client from config, backed by the resty transport.
func NewAPIClient(cfg *config.Config, log logger.Logger) *uber.Client {
	return uber.New(uber.Config{
		Token:   cfg.APIToken,
		Version: cfg.APIVersion,
		BaseURL: cfg.BaseURL(),
		HTTPClient: httpclient.NewRestyClient(httpclient.Options{
			Timeout:   cfg.HTTPTimeout,
			UserAgent: userAgent,
		}),
		Logger: log,
	})
}
