package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	fetchRetryInterval = 500 * time.Millisecond
	fetchMaxRetries    = 5
)

// fetchRemoteCSV downloads one export file, retrying transient failures
// with a constant backoff.
func fetchRemoteCSV(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return backoff.Permanent(reqErr)
			}

			resp, httpErr := http.DefaultClient.Do(req)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			var readErr error
			body, readErr = io.ReadAll(resp.Body)
			if readErr != nil {
				return fmt.Errorf("read body: %w", readErr)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(fetchRetryInterval), fetchMaxRetries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return body, nil
}
