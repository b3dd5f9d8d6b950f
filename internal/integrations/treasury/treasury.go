package treasury

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/treasurywatch/debt-tracker/internal/config"
	"github.com/treasurywatch/debt-tracker/internal/models"
)

const (
	debtToPennyPath = "/v2/accounting/od/debt_to_penny"
	dateLayout      = "2006-01-02"
)

// Client handles integration with the Treasury fiscal-data API
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new fiscal-data client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		client: &http.Client{
			Timeout: cfg.APITimeout,
		},
		log: log,
	}
}

// rawRecord mirrors one element of the API's data array. Amounts arrive as
// numeric strings.
type rawRecord struct {
	RecordDate string `json:"record_date"`
	TotalDebt  string `json:"tot_pub_debt_out_amt"`
}

// Fetch retrieves up to windowDays most-recent daily debt records. The
// returned series is sorted descending by date with duplicate dates dropped,
// regardless of the order the API responded with. Failures carry a FetchError
// kind; the caller treats any error as "no data" rather than crashing.
func (c *Client) Fetch(ctx context.Context, windowDays int) (models.DebtSeries, error) {
	body, err := c.sendRequest(ctx, windowDays)
	if err != nil {
		return nil, err
	}

	series, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.log.Debugf("Fetched %d debt records for a %d-day window", len(series), windowDays)
	return series, nil
}

// sendRequest performs the GET against the debt_to_penny dataset
func (c *Client) sendRequest(ctx context.Context, windowDays int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+debtToPennyPath, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindUnavailable, Cause: fmt.Sprintf("failed to create request: %v", err)}
	}

	q := req.URL.Query()
	q.Set("sort", "-record_date")
	q.Set("page[size]", strconv.Itoa(windowDays))
	q.Set("fields", "record_date,tot_pub_debt_out_amt")
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindUnavailable, Cause: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: KindUnavailable, Cause: fmt.Sprintf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindUnavailable, Cause: fmt.Sprintf("failed to read response: %v", err)}
	}

	return body, nil
}

// parseResponse converts the JSON payload into a clean descending series.
// A single malformed record fails the whole fetch; there is no partial data.
func (c *Client) parseResponse(body []byte) (models.DebtSeries, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{Kind: KindUnexpectedFormat, Cause: fmt.Sprintf("response is not a JSON object: %v", err)}
	}

	rawData, ok := payload["data"]
	if !ok {
		return nil, &FetchError{Kind: KindUnexpectedFormat, Cause: "response missing top-level data key"}
	}

	var records []rawRecord
	if err := json.Unmarshal(rawData, &records); err != nil {
		return nil, &FetchError{Kind: KindUnexpectedFormat, Cause: fmt.Sprintf("data key is not an array of records: %v", err)}
	}

	series := make(models.DebtSeries, 0, len(records))
	for _, r := range records {
		date, err := time.Parse(dateLayout, r.RecordDate)
		if err != nil {
			return nil, &FetchError{Kind: KindParseError, Cause: fmt.Sprintf("invalid record_date %q: %v", r.RecordDate, err)}
		}
		amount, err := decimal.NewFromString(r.TotalDebt)
		if err != nil {
			return nil, &FetchError{Kind: KindParseError, Cause: fmt.Sprintf("invalid tot_pub_debt_out_amt %q: %v", r.TotalDebt, err)}
		}
		series = append(series, models.DebtRecord{Date: date, TotalDebt: amount})
	}

	// The API is asked for descending order but not trusted to honor it.
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.After(series[j].Date)
	})

	return dedupeDates(series), nil
}

// dedupeDates drops repeated dates from an already-sorted series, keeping the
// first occurrence.
func dedupeDates(series models.DebtSeries) models.DebtSeries {
	out := series[:0]
	for i, r := range series {
		if i > 0 && r.Date.Equal(series[i-1].Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}
