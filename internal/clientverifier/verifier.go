// Package clientverifier checks account owners against the remote client service.
package clientverifier

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taller01/accountms/internal/domain"
)

// Default timeouts applied to the owner lookup when none are configured.
const (
	DefaultConnectTimeout = 3 * time.Second
	DefaultRequestTimeout = 5 * time.Second
)

// HTTP verifies owners with a GET {baseURL}/clients/{id} lookup.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP returns an owner verifier backed by the client service at baseURL.
func NewHTTP(baseURL string, connectTimeout, requestTimeout time.Duration) *HTTP {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	return &HTTP{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}
}

// Verify returns nil when the owner exists in the client service. Lookup
// failures translate into domain errors; the call is never retried here.
func (v *HTTP) Verify(ctx context.Context, ownerID string) error {
	l := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/clients/"+ownerID, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.ErrClientServiceUnavailable
	}

	res, err := v.client.Do(req)
	if err != nil {
		// Timeouts, DNS failures, refused connections.
		l.Warn().Err(err).Msg("client service unreachable")
		return domain.ErrClientServiceUnavailable
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices:
		return nil
	case res.StatusCode == http.StatusNotFound:
		return domain.ErrOwnerNotFound
	case res.StatusCode == http.StatusBadRequest:
		return domain.ErrOwnerIDInvalid
	case res.StatusCode < http.StatusInternalServerError:
		return domain.ErrOwnerNotVerified
	default:
		l.Warn().Int("status_code", res.StatusCode).Msg("client service error")
		return domain.ErrClientServiceUnavailable
	}
}
