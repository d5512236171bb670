package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AlexZav1327/converter/models"
	"github.com/sirupsen/logrus"
)

const fetchTimeout = 10 * time.Second

// ErrRatesUnavailable covers every way a fetch can fail: connection error,
// non-200 status, undecodable body or a body without a rates table. The
// caller never needs to tell them apart.
var ErrRatesUnavailable = errors.New("exchange rates are unavailable")

type Client struct {
	endpoint  string
	accessKey string
	client    *http.Client
	log       *logrus.Entry
	metrics   *metrics
}

func New(endpoint, accessKey string, log *logrus.Logger) *Client {
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		client:    &http.Client{Timeout: fetchTimeout},
		log:       log.WithField("module", "rates"),
		metrics:   newMetrics(),
	}
}

// FetchRates makes a single attempt against the provider. No retry: a
// conversion request triggers at most one outbound call. The access key
// travels in the query string and must never be logged.
func (c *Client) FetchRates(ctx context.Context) (models.RateSnapshot, error) {
	started := time.Now()
	defer func() {
		c.metrics.duration.Observe(time.Since(started).Seconds())
	}()

	endpoint := fmt.Sprintf("%s?access_key=%s", c.endpoint, url.QueryEscape(c.accessKey))

	// the raw error text embeds the endpoint, access key included, so it
	// is folded into the unified failure like every other branch here
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Warning("building rate provider request failed")

		return models.RateSnapshot{}, ErrRatesUnavailable
	}

	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		c.log.Warning("connection to rate provider failed")

		return models.RateSnapshot{}, ErrRatesUnavailable
	}

	defer func() {
		err = response.Body.Close()
		if err != nil {
			c.log.Warningf("response.Body.Close: %s", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		c.log.Warningf("rate provider returned status %d", response.StatusCode)

		return models.RateSnapshot{}, ErrRatesUnavailable
	}

	var snapshot models.RateSnapshot

	err = json.NewDecoder(response.Body).Decode(&snapshot)
	if err != nil {
		c.log.Warningf("json.NewDecoder.Decode: %s", err)

		return models.RateSnapshot{}, ErrRatesUnavailable
	}

	if len(snapshot.Rates) == 0 {
		c.log.Warning("rate provider response has no rates table")

		return models.RateSnapshot{}, ErrRatesUnavailable
	}

	snapshot.Timestamp = time.Now().UTC()

	return snapshot, nil
}
