// Package planclient is the Go client for the plan service's REST surface.
// It speaks the flat bracket-indexed urlencoded wire format on writes and
// hydrates structured plans from the JSON records on reads.
package planclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"planservice/internal/money"
	"planservice/internal/plan"
)

// defaultHTTPClient backs zero-value Clients so the connection pool is shared
// across requests.
var defaultHTTPClient = &http.Client{Timeout: 20 * time.Second}

type Client struct {
	HTTPClient   *http.Client
	BaseURL      string
	SchoolDomain string
	SessionToken string

	// Locale used to mask the config mirror on encode. Zero value means pt-BR.
	Locale money.Locale
}

func (c Client) locale() money.Locale {
	if c.Locale.Symbol == "" {
		return money.PtBR
	}
	return c.Locale
}

// CreatePlan submits a new plan. The in-memory plan is left untouched on
// every failure path so the operator can correct and retry.
func (c Client) CreatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	if plan.HasInvalidDiscount(p.Options, p.Total) {
		return plan.Plan{}, &ValidationError{
			Message: "desconto maior que o valor da parcela",
			Fields:  discountFields(p),
		}
	}

	var rec plan.Record
	if _, err := c.do(ctx, http.MethodPost, "/v1/plans", plan.Encode(p, c.locale()), &rec); err != nil {
		return plan.Plan{}, err
	}
	return plan.FromRecord(rec), nil
}

// UpdatePlan rewrites an existing plan; p.ID must be set.
func (c Client) UpdatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	if p.ID == "" {
		return plan.Plan{}, fmt.Errorf("missing plan id")
	}
	if plan.HasInvalidDiscount(p.Options, p.Total) {
		return plan.Plan{}, &ValidationError{
			Message: "desconto maior que o valor da parcela",
			Fields:  discountFields(p),
		}
	}

	var rec plan.Record
	if _, err := c.do(ctx, http.MethodPut, "/v1/plans/"+url.PathEscape(p.ID), plan.Encode(p, c.locale()), &rec); err != nil {
		return plan.Plan{}, err
	}
	return plan.FromRecord(rec), nil
}

func (c Client) GetPlan(ctx context.Context, id string) (plan.Plan, error) {
	var rec plan.Record
	if _, err := c.do(ctx, http.MethodGet, "/v1/plans/"+url.PathEscape(id), nil, &rec); err != nil {
		return plan.Plan{}, err
	}
	return plan.FromRecord(rec), nil
}

func (c Client) DeletePlan(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/v1/plans/"+url.PathEscape(id), nil, nil)
	return err
}

type ListOptions struct {
	Page     int
	PerPage  int
	CourseID string
}

type Page struct {
	Items   []plan.Plan
	Page    int
	PerPage int
	Total   int
}

func (c Client) ListPlans(ctx context.Context, opts ListOptions) (Page, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.CourseID != "" {
		q.Set("id_curso", opts.CourseID)
	}

	path := "/v1/plans"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Items   []plan.Record `json:"items"`
		Page    int           `json:"page"`
		PerPage int           `json:"per_page"`
		Total   int           `json:"total"`
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return Page{}, err
	}

	out := Page{Page: resp.Page, PerPage: resp.PerPage, Total: resp.Total}
	for _, rec := range resp.Items {
		out.Items = append(out.Items, plan.FromRecord(rec))
	}
	return out, nil
}

func (c Client) do(ctx context.Context, method, path string, form url.Values, respBody any) (int, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient
	}
	if c.BaseURL == "" {
		return 0, fmt.Errorf("missing base url")
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, body)
	if err != nil {
		return 0, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.SessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.SessionToken)
	}
	if c.SchoolDomain != "" {
		req.Header.Set("X-School-Domain", c.SchoolDomain)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if verr := parseValidationError(b); verr != nil {
			return resp.StatusCode, verr
		}
		if len(b) > 0 {
			return resp.StatusCode, fmt.Errorf("plan api error: status=%d body=%s", resp.StatusCode, string(b))
		}
		return resp.StatusCode, fmt.Errorf("plan api error: status=%d", resp.StatusCode)
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			// Include body for easier debugging (unexpected shape, partial responses, etc).
			return resp.StatusCode, fmt.Errorf("decode plan api response failed: %w body=%s", err, string(b))
		}
	}

	return resp.StatusCode, nil
}

func discountFields(p plan.Plan) map[string][]string {
	fields := map[string][]string{}
	for _, i := range plan.InvalidDiscounts(p.Options, p.Total) {
		key := fmt.Sprintf("parcelas[%d][desconto]", i)
		fields[key] = append(fields[key], "o desconto não pode ser maior que o valor da parcela")
	}
	return fields
}
