package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

const (
	airtableBaseURL   = "https://api.airtable.com/v0"
	airtablePageSize  = 100
	airtableBatchSize = 10 // Airtable rejects larger create/delete batches
)

// AirtableProvider implements DataProvider for Airtable
type AirtableProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	baseID  string
	tables  map[string]string // record table -> Airtable table name
}

// NewAirtableProvider creates a new Airtable provider
func NewAirtableProvider(apiKey, baseID string, tables map[string]string) *AirtableProvider {
	return &AirtableProvider{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: airtableBaseURL,
		apiKey:  apiKey,
		baseID:  baseID,
		tables:  tables,
	}
}

// WithBaseURL points the provider at another API root (tests, proxies)
func (p *AirtableProvider) WithBaseURL(base string) *AirtableProvider {
	p.baseURL = base
	return p
}

// GetProviderType returns the provider type identifier
func (p *AirtableProvider) GetProviderType() string {
	return "airtable"
}

func (p *AirtableProvider) CanWrite() bool { return true }

func (p *AirtableProvider) tableURL(table string) (string, error) {
	name, ok := p.tables[table]
	if !ok || name == "" {
		return "", newProviderError(constants.ErrCodeTableNotMapped, fmt.Errorf("table %s", table))
	}
	return fmt.Sprintf("%s/%s/%s", p.baseURL, p.baseID, url.PathEscape(name)), nil
}

// FetchTable fetches every record with pagination
func (p *AirtableProvider) FetchTable(ctx context.Context, table string) (entities.Table, error) {
	records, err := p.listRecords(ctx, table)
	if err != nil {
		return entities.Table{}, err
	}

	seen := make(map[string]struct{})
	rows := make([]entities.Row, 0, len(records))
	for _, rec := range records {
		row := make(entities.Row, len(rec.Fields))
		for k, v := range rec.Fields {
			row[k] = stringifyField(v)
			seen[k] = struct{}{}
		}
		rows = append(rows, row)
	}

	// Airtable omits empty cells; backfill so every row has every column.
	cols := orderColumns(table, seen)
	for _, row := range rows {
		for _, c := range cols {
			if _, ok := row[c]; !ok {
				row[c] = ""
			}
		}
	}

	logging.Debug("Fetched Airtable table", "table", table, "records", len(rows))
	return entities.Table{Name: table, Columns: cols, Rows: rows}, nil
}

// ReplaceTable deletes every remote record and recreates the table in batches
func (p *AirtableProvider) ReplaceTable(ctx context.Context, table entities.Table) error {
	existing, err := p.listRecords(ctx, table.Name)
	if err != nil {
		return err
	}

	base, err := p.tableURL(table.Name)
	if err != nil {
		return err
	}

	for start := 0; start < len(existing); start += airtableBatchSize {
		end := min(start+airtableBatchSize, len(existing))
		q := url.Values{}
		for _, rec := range existing[start:end] {
			q.Add("records[]", rec.ID)
		}
		if err := p.do(ctx, http.MethodDelete, base+"?"+q.Encode(), nil, nil); err != nil {
			return err
		}
	}

	for start := 0; start < len(table.Rows); start += airtableBatchSize {
		end := min(start+airtableBatchSize, len(table.Rows))
		payload := airtableCreateRequest{Typecast: true}
		for _, row := range table.Rows[start:end] {
			fields := make(map[string]interface{}, len(row))
			for k, v := range row {
				fields[k] = v
			}
			payload.Records = append(payload.Records, airtableFields{Fields: fields})
		}
		if err := p.do(ctx, http.MethodPost, base, payload, nil); err != nil {
			return err
		}
	}

	logging.Info("Replaced Airtable table", "table", table.Name, "deleted", len(existing), "created", len(table.Rows))
	return nil
}

// listRecords walks listRecords pages until Airtable stops returning an offset
func (p *AirtableProvider) listRecords(ctx context.Context, table string) ([]AirtableRecordResponse, error) {
	base, err := p.tableURL(table)
	if err != nil {
		return nil, err
	}

	var all []AirtableRecordResponse
	offset := ""
	for {
		payload := map[string]interface{}{"pageSize": airtablePageSize}
		if offset != "" {
			payload["offset"] = offset
		}

		var page AirtableListResponse
		if err := p.do(ctx, http.MethodPost, base+"/listRecords", payload, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

func (p *AirtableProvider) do(ctx context.Context, method, target string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payloadBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	common.LogHTTPRequest(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return newProviderError(constants.ErrCodeNetworkError, err)
	}
	defer resp.Body.Close()

	if err := p.handleHTTPError(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidDataFormat),
			Err:     err,
		}
	}
	return nil
}

// handleHTTPError converts HTTP errors to ProviderError
func (p *AirtableProvider) handleHTTPError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidAPIKey),
			Details: string(body),
		}
	case http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeTableAccessDenied,
			Message: constants.GetErrorMessage(constants.ErrCodeTableAccessDenied),
			Details: string(body),
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeTableNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeTableNotFound),
			Details: string(body),
		}
	case http.StatusUnprocessableEntity:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidDataFormat),
			Details: string(body),
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: string(body),
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
			Details: string(body),
		}
	}
}

// Airtable API request/response structures

type AirtableRecordResponse struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

type AirtableListResponse struct {
	Records []AirtableRecordResponse `json:"records"`
	Offset  string                   `json:"offset,omitempty"`
}

type airtableFields struct {
	Fields map[string]interface{} `json:"fields"`
}

type airtableCreateRequest struct {
	Records  []airtableFields `json:"records"`
	Typecast bool             `json:"typecast"`
}
