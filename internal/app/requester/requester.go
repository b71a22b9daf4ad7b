package requester

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"reviewcrawler/internal/app/page"
	"reviewcrawler/internal/usecase"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type requester struct {
	client *resty.Client
	logger *zap.Logger
}

// NewRequester builds the transport collaborator. The header set is sent
// unchanged with every request; rt replaces the underlying transport when
// not nil (used by tests).
func NewRequester(timeout time.Duration, headers map[string]string, logger *zap.Logger, rt http.RoundTripper) requester {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeaders(headers)
	if rt != nil {
		client.SetTransport(rt)
	}
	logger.Debug("new requester initialize")
	return requester{
		client: client,
		logger: logger,
	}
}

// Get performs a single fetch attempt, no retries. A non-success status or
// a transport failure comes back as an error wrapping the matching
// usecase sentinel.
func (r requester) Get(ctx context.Context, url string) (usecase.Page, error) {
	r.logger.Info("fetching", zap.String("url", url))
	resp, err := r.client.R().SetContext(ctx).Get(url)
	if err != nil {
		r.logger.Error("exception while fetching", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", usecase.ErrTransport, err)
	}
	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return page.NewPage(bytes.NewReader(resp.Body()), r.logger)
	case status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable:
		r.logger.Warn("rate limited, consider increasing the delay bound",
			zap.String("url", url), zap.Int("status", status))
		return nil, fmt.Errorf("%w: status %d", usecase.ErrRateLimited, status)
	default:
		r.logger.Error("failed to fetch page", zap.String("url", url), zap.Int("status", status))
		return nil, fmt.Errorf("%w: status %d", usecase.ErrFetchFailed, status)
	}
}
