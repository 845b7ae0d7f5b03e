package jobmgmt

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const acceptJSON = "application/json"

// Client talks to the job-management API. Every request carries an
// HMAC-SHA512 signature over the canonical request string.
type Client struct {
	baseURL   string
	token     string
	secret    string
	pageSize  int
	pageDelay time.Duration
	http      *http.Client
	log       zerolog.Logger
	now       func() time.Time
}

func New(baseURL, token, secret string, pageSize int, pageDelay time.Duration, log zerolog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		secret:    secret,
		pageSize:  pageSize,
		pageDelay: pageDelay,
		http:      &http.Client{Timeout: 15 * time.Second},
		log:       log,
		now:       time.Now,
	}
}

type Defect struct {
	Description    string
	Severity       string
	Recommendation string
}

type JobRequest struct {
	ClientRef string
	AssetRef  string
	Summary   string
	Defects   []Defect
}

type JobRecord struct {
	ID        string `json:"id"`
	ClientRef string `json:"clientref"`
	Status    string `json:"status"`
}

type jobXML struct {
	XMLName   xml.Name    `xml:"job"`
	ClientRef string      `xml:"clientref"`
	AssetRef  string      `xml:"assetref"`
	Summary   string      `xml:"summary,omitempty"`
	Defects   []defectXML `xml:"defects>defect"`
}

type defectXML struct {
	Description    string `xml:"description"`
	Severity       string `xml:"severity"`
	Recommendation string `xml:"recommendation,omitempty"`
}

type apiResponse struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	ZoneResponse struct {
		PostResults struct {
			Inserts []struct {
				ID string `json:"id"`
			} `json:"inserts"`
		} `json:"postresults"`
	} `json:"zoneresponse"`
	Jobs []JobRecord `json:"jobs"`
}

// CreateJob turns defect findings into a job record and returns the created
// id. An empty defect list aborts before any network call.
func (c *Client) CreateJob(ctx context.Context, jr JobRequest) (string, error) {
	if len(jr.Defects) == 0 {
		return "", fmt.Errorf("no defects to raise a job from")
	}

	payload := jobXML{ClientRef: jr.ClientRef, AssetRef: jr.AssetRef, Summary: jr.Summary}
	for _, d := range jr.Defects {
		payload.Defects = append(payload.Defects, defectXML(d))
	}
	doc, err := xml.Marshal(payload)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("zone", "jobs")
	form.Set("payload", xml.Header+string(doc))
	body := form.Encode()

	out, err := c.do(ctx, http.MethodPost, "/jobs", body)
	if err != nil {
		return "", err
	}
	if len(out.ZoneResponse.PostResults.Inserts) == 0 {
		return "", fmt.Errorf("no inserted record in response")
	}
	id := out.ZoneResponse.PostResults.Inserts[0].ID
	c.log.Info().Str("job_id", id).Str("client_ref", jr.ClientRef).Int("defects", len(jr.Defects)).Msg("job created")
	return id, nil
}

// ListJobs pages through existing job records with a fixed inter-page delay.
// A page shorter than the page size terminates the loop.
func (c *Client) ListJobs(ctx context.Context) ([]JobRecord, error) {
	var all []JobRecord
	for page := 1; ; page++ {
		path := fmt.Sprintf("/jobs?page=%d&page_size=%d", page, c.pageSize)
		out, err := c.do(ctx, http.MethodGet, path, "")
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, out.Jobs...)
		if len(out.Jobs) < c.pageSize {
			return all, nil
		}
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
	}
}

func (c *Client) do(ctx context.Context, method, path, body string) (*apiResponse, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := sign(c.secret, canonicalString(method, path, acceptJSON, c.token, timestamp, body))

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("Authorization", c.token)
	req.Header.Set("afdatetimeutc", timestamp)
	req.Header.Set("Authentication", "HMAC "+signature)
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("jobs api status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Status != 0 {
		return nil, fmt.Errorf("jobs api error status %d: %s", out.Status, out.Message)
	}
	return &out, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return nil
	}
	t := time.NewTimer(c.pageDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
