package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/core/machine"
	"github.com/example/prodline/internal/core/process"
	"github.com/example/prodline/internal/core/session"
	"github.com/example/prodline/internal/ports/secondary"
)

// DefaultTimeout bounds every request to the tracking backend. The backend
// can take minutes on heavy queries, so this is deliberately generous.
const DefaultTimeout = 180 * time.Second

// Client talks to the job-tracking backend over HTTP and implements
// secondary.Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient builds a gateway client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Jar: jar},
		timeout:    DefaultTimeout,
		log:        discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var _ secondary.Gateway = (*Client)(nil)

// do issues one request and decodes the JSON response into out. A deadline
// hit maps to TimeoutError so callers can tell slowness from rejection.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{}
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{}
		}
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &payload)
		return &RequestError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out != nil {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// rejected reports a well-formed HTTP response whose body says no.
func rejected(statusCode int, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &RequestError{StatusCode: statusCode, Message: message}
}

// Login authenticates an operator and returns their profile with the
// machines assigned to them.
func (c *Client) Login(ctx context.Context, username, database string) (*secondary.LoginResult, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("database", database)
	query.Set("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))

	var resp struct {
		Status   bool          `json:"status"`
		Error    string        `json:"error"`
		UserID   flexInt       `json:"userId"`
		LedgerID flexInt       `json:"ledgerId"`
		Machines []machineWire `json:"machines"`
	}
	if err := c.do(ctx, http.MethodGet, "auth/login", query, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, rejected(http.StatusOK, resp.Error, "login failed")
	}

	machines := make([]session.Machine, 0, len(resp.Machines))
	for _, m := range resp.Machines {
		machines = append(machines, m.toMachine())
	}
	return &secondary.LoginResult{
		UserID:   int64(resp.UserID),
		LedgerID: int64(resp.LedgerID),
		Machines: machines,
	}, nil
}

// PendingProcesses searches job cards for processes an operator could run.
func (c *Client) PendingProcesses(ctx context.Context, q secondary.PendingQuery) ([]process.Record, error) {
	query := url.Values{}
	query.Set("UserID", strconv.FormatInt(q.UserID, 10))
	query.Set("MachineID", q.MachineID)
	query.Set("jobcardcontentno", q.JobCardNo)
	query.Set("isManualEntry", strconv.FormatBool(q.ManualEntry))
	query.Set("database", q.Database)

	var resp struct {
		Status    bool          `json:"status"`
		Error     string        `json:"error"`
		Processes []processWire `json:"processes"`
	}
	if err := c.do(ctx, http.MethodGet, "processes/pending", query, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, rejected(http.StatusOK, resp.Error, "search failed")
	}
	records := make([]process.Record, 0, len(resp.Processes))
	for _, p := range resp.Processes {
		records = append(records, p.toRecord())
	}
	return records, nil
}

type asyncResponse struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
	JobID  string `json:"jobId"`
}

// startAsync posts an operation that the backend queues as a job and
// returns the job id to poll.
func (c *Client) startAsync(ctx context.Context, path string, body any) (string, error) {
	var resp asyncResponse
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return "", err
	}
	if !resp.Status || resp.JobID == "" {
		return "", rejected(http.StatusOK, resp.Error, "failed to create job")
	}
	return resp.JobID, nil
}

// StartProcess queues a start-production job and returns its job id.
func (c *Client) StartProcess(ctx context.Context, req secondary.StartRequest) (string, error) {
	body := map[string]any{
		"UserID":                      req.UserID,
		"EmployeeID":                  req.EmployeeID,
		"ProcessID":                   req.ProcessID,
		"JobBookingJobCardContentsID": req.JobBookingContentsID,
		"MachineID":                   req.MachineID,
		"JobCardFormNo":               req.JobCardFormNo,
		"database":                    req.Database,
	}
	return c.startAsync(ctx, "processes/start-async", body)
}

// CompleteProcess queues a complete-production job and returns its job id.
func (c *Client) CompleteProcess(ctx context.Context, req secondary.CompleteRequest) (string, error) {
	body := map[string]any{
		"UserID":        req.UserID,
		"ProductionID":  req.ProductionID,
		"ProductionQty": req.ProductionQty,
		"WastageQty":    req.WastageQty,
		"database":      req.Database,
	}
	return c.startAsync(ctx, "processes/complete-async", body)
}

// CancelProcess queues a cancel-production job and returns its job id.
func (c *Client) CancelProcess(ctx context.Context, req secondary.CancelRequest) (string, error) {
	body := map[string]any{
		"UserID":       req.UserID,
		"ProductionID": req.ProductionID,
		"database":     req.Database,
	}
	return c.startAsync(ctx, "processes/cancel-async", body)
}

// JobStatus fetches the current state of a queued job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*secondary.Job, error) {
	var resp struct {
		Status bool     `json:"status"`
		Error  string   `json:"error"`
		Job    *jobWire `json:"job"`
	}
	path := fmt.Sprintf("jobs/%s/status", url.PathEscape(jobID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status || resp.Job == nil {
		return nil, rejected(http.StatusOK, resp.Error, "job status unavailable")
	}
	job := &secondary.Job{
		Status:       resp.Job.Status,
		ProductionID: string(resp.Job.ProductionID),
		Error:        resp.Job.Error,
	}
	if resp.Job.Warning != nil {
		job.Warning = &secondary.StatusWarning{
			Message:     resp.Job.Warning.Message,
			StatusValue: string(resp.Job.Warning.StatusValue),
		}
	}
	return job, nil
}

// LatestMachineStatus fetches the latest status rows for all machines.
func (c *Client) LatestMachineStatus(ctx context.Context, database string) ([]machine.Status, error) {
	body := map[string]any{"database": database}
	var resp struct {
		Status   bool                `json:"status"`
		Error    string              `json:"error"`
		Machines []machineStatusWire `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "machine-status/latest", nil, body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, rejected(http.StatusOK, resp.Error, "machine status unavailable")
	}
	statuses := make([]machine.Status, 0, len(resp.Machines))
	for _, m := range resp.Machines {
		statuses = append(statuses, m.toStatus())
	}
	return statuses, nil
}
