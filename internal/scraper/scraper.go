package scraper

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/elmoro10/fagerborg-tabeller/internal/config"
	"github.com/elmoro10/fagerborg-tabeller/internal/logger"
)

// ErrFetchFailure marks transport errors, timeouts and unsuccessful responses.
var ErrFetchFailure = crerr.New("fetch failure")

// Scraper fetches pages over HTTP.
type Scraper struct {
	client *resty.Client
}

// New creates a Scraper. Empty userAgent and non-positive timeout fall back to
// config.DefaultUserAgent and config.DefaultTimeout.
func New(userAgent string, timeout time.Duration) *Scraper {
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	client.SetHeader("Accept-Language", "nb-NO,nb;q=0.9,no;q=0.8,en;q=0.5")

	return &Scraper{client: client}
}

// Fetch returns the body of url as text.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := s.client.R().SetContext(ctx).Get(url)
	logger.RecordTiming("fetch", time.Since(start))

	if err != nil {
		logger.IncrCounter("fetch.errors")
		return "", crerr.Mark(crerr.Wrapf(err, "fetching %s", url), ErrFetchFailure)
	}
	if !resp.IsSuccess() {
		logger.IncrCounter("fetch.errors")
		return "", crerr.Mark(crerr.Newf("fetching %s: unexpected status code: %d", url, resp.StatusCode()), ErrFetchFailure)
	}

	logger.Debug("fetched page", logger.Fields{
		"url":      url,
		"status":   resp.StatusCode(),
		"bytes":    len(resp.Body()),
		"duration": time.Since(start).String(),
	})
	return string(resp.Body()), nil
}
