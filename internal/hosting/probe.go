package hosting

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	logger "github.com/riverfold/privydash/internal/logging"
)

// ProbeURL checks that the published URL answers after a deploy. The check
// is best-effort: CDN propagation can lag, so a failure is reported to the
// caller for logging but never fails the publish.
func ProbeURL(url string, log logger.Logger) error {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 2 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe returned status %d", resp.StatusCode)
	}

	log.Debugf("Published URL answered with status %d", resp.StatusCode)
	return nil
}
