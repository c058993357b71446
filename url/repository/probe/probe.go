package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/hos6/urlshortener/domain"
	loggerKit "github.com/hos6/urlshortener/kit/logger"
)

// Some sites answer probes without a browser User-Agent with 403.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"

type httpURLChecker struct {
	client *http.Client
	logger *loggerKit.Logger
}

func CreateHTTPURLChecker(timeout time.Duration, logger *loggerKit.Logger) domain.URLChecker {
	return &httpURLChecker{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// IsReachable treats any transport error, timeout, or non-2xx answer as
// unreachable.
func (c *httpURLChecker) IsReachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("probe url failed", loggerKit.String("url", url), loggerKit.Error(err))
		return false
	}
	defer res.Body.Close()

	return res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices
}
