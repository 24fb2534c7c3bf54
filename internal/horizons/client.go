package horizons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/logging"
	"github.com/litescript/ls-astroclock/internal/position"
)

const (
	// APIURL is the JPL Horizons JSON API endpoint.
	APIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// DefaultStep is the sample spacing used when a range has none.
	DefaultStep = "1 d"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 60 * time.Second
)

// Range is the time span and sample spacing of a query.
type Range struct {
	Start time.Time
	Stop  time.Time
	Step  string // Horizons step size, e.g. "1 d" or "12 h"
}

// Client queries the Horizons API for observer and element exports.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	log     *logging.Logger
}

// NewClient creates a client for the public Horizons API.
func NewClient(log *logging.Logger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		BaseURL: APIURL,
		HTTP:    &http.Client{Timeout: RequestTimeout},
		log:     log,
	}
}

// Observer fetches geocentric ecliptic longitudes for a body and returns
// them as a longitude segment.
func (c *Client) Observer(ctx context.Context, b position.Body, r Range) (ephem.Segment, error) {
	params, err := baseParams(b, r)
	if err != nil {
		return ephem.Segment{}, err
	}
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'500@399'")
	params.Set("QUANTITIES", "'20,31'") // range and rate, ecliptic lon/lat
	params.Set("CSV_FORMAT", "YES")
	params.Set("CAL_FORMAT", "JD")
	params.Set("ANG_FORMAT", "DEG")

	result, err := c.query(ctx, params)
	if err != nil {
		return ephem.Segment{}, err
	}
	return ParseObserver(strings.NewReader(result), b.Key(), c.log)
}

// Elements fetches heliocentric osculating elements for a body and
// returns them as an element segment.
func (c *Client) Elements(ctx context.Context, b position.Body, r Range) (ephem.Segment, error) {
	params, err := baseParams(b, r)
	if err != nil {
		return ephem.Segment{}, err
	}
	params.Set("EPHEM_TYPE", "ELEMENTS")
	params.Set("CENTER", "'500@10'")
	params.Set("REF_PLANE", "ECLIPTIC")
	params.Set("REF_SYSTEM", "J2000")
	params.Set("OUT_UNITS", "'AU-D'")
	params.Set("TP_TYPE", "ABSOLUTE")
	params.Set("CSV_FORMAT", "NO")

	result, err := c.query(ctx, params)
	if err != nil {
		return ephem.Segment{}, err
	}
	return ParseElements(strings.NewReader(result), b.Key())
}

// baseParams builds the parameters shared by both query types. Values
// must be quoted with single quotes.
func baseParams(b position.Body, r Range) (url.Values, error) {
	cmd, ok := Command(b)
	if !ok {
		return nil, fmt.Errorf("no horizons target for %s", b)
	}
	if !r.Stop.After(r.Start) {
		return nil, fmt.Errorf("stop time %s is not after start %s", r.Stop.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}
	step := r.Step
	if step == "" {
		step = DefaultStep
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%s'", cmd))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatTime(r.Start)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatTime(r.Stop)))
	params.Set("STEP_SIZE", fmt.Sprintf("'%s'", step))
	return params, nil
}

// response represents the JSON API response.
type response struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// query makes a request to the Horizons API and returns the text result.
func (c *Client) query(ctx context.Context, params url.Values) (string, error) {
	reqURL := c.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	c.log.Debug("horizons request", "command", params.Get("COMMAND"), "type", params.Get("EPHEM_TYPE"))
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("failed to parse JSON: %w", err)
	}
	if r.Error != "" {
		return "", fmt.Errorf("horizons: %s", strings.TrimSpace(r.Error))
	}
	c.log.Debug("horizons response", "version", r.Signature.Version, "bytes", len(r.Result))
	return r.Result, nil
}

// formatTime formats a time for the Horizons API.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
