package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"golang.org/x/net/html/charset"
)

const userAgent = "curl/7.54.1"

var httpClient = &http.Client{}

// Fetch GETs the named path and returns the body decoded to UTF-8.
// Network errors and 5xx/429 responses are retried up to MaxRetries times, other statuses fail straight away.
func (p *Provider) Fetch(ctx context.Context, pathName string, params url.Values) ([]byte, error) {
	requestURL, err := p.URL(pathName, params)
	if err != nil {
		return nil, err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 200 * time.Millisecond
	retryBackoff.MaxElapsedTime = p.Timeout()

	var body []byte
	attempt := 0

	operation := func() error {
		attempt++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		for key, value := range p.Headers {
			req.Header.Set(key, value)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctdf.NewTransportError(fmt.Sprintf("%s request cancelled", p.Identifier), ctx.Err()))
			}
			return ctdf.NewTransportError(fmt.Sprintf("%s request failed", p.Identifier), err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return ctdf.NewTransportError(fmt.Sprintf("%s returned status %d", p.Identifier, resp.StatusCode), nil)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(ctdf.NewTransportError(fmt.Sprintf("%s returned status %d", p.Identifier, resp.StatusCode), nil))
		}

		reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
		if err != nil {
			return backoff.Permanent(&ctdf.UpstreamError{Kind: ctdf.ErrorKindUpstreamFormat, Message: "unreadable response encoding", Err: err})
		}

		body, err = io.ReadAll(reader)
		if err != nil {
			return ctdf.NewTransportError(fmt.Sprintf("%s response could not be read", p.Identifier), err)
		}

		return nil
	}

	err = backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(retryBackoff, uint64(max(p.MaxRetries, 0))), ctx),
		func(err error, wait time.Duration) {
			log.Warn().Err(err).Str("provider", p.Identifier).Int("attempt", attempt).Dur("wait", wait).Msg("Retrying upstream request")
		},
	)

	return body, err
}
