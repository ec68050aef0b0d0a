package providers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

const sheetExportURL = "https://docs.google.com/spreadsheets/d/%s/export?format=csv"

// PublicSheetProvider pulls tables from link-shared Google Sheets through
// their CSV export. It cannot write.
type PublicSheetProvider struct {
	client    *http.Client
	urlFormat string
	sheetIDs  map[string]string // record table -> sheet id
}

// NewPublicSheetProvider creates a read-only sheet provider
func NewPublicSheetProvider(sheetIDs map[string]string) *PublicSheetProvider {
	return &PublicSheetProvider{
		client:    &http.Client{Timeout: 30 * time.Second},
		urlFormat: sheetExportURL,
		sheetIDs:  sheetIDs,
	}
}

// WithURLFormat overrides the export URL; it must contain one %s for the sheet id
func (p *PublicSheetProvider) WithURLFormat(format string) *PublicSheetProvider {
	p.urlFormat = format
	return p
}

func (p *PublicSheetProvider) GetProviderType() string {
	return "public_sheet"
}

func (p *PublicSheetProvider) CanWrite() bool { return false }

// IsPlaceholder reports sheet ids left at their template value
func IsPlaceholder(sheetID string) bool {
	return sheetID == "" || strings.Contains(sheetID, "your_")
}

// Configured reports whether the table has a usable sheet id
func (p *PublicSheetProvider) Configured(table string) bool {
	return !IsPlaceholder(p.sheetIDs[table])
}

func (p *PublicSheetProvider) FetchTable(ctx context.Context, table string) (entities.Table, error) {
	id := p.sheetIDs[table]
	if IsPlaceholder(id) {
		return entities.Table{}, newProviderError(constants.ErrCodeTableNotMapped, fmt.Errorf("table %s", table))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(p.urlFormat, id), nil)
	if err != nil {
		return entities.Table{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return entities.Table{}, newProviderError(constants.ErrCodeNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return entities.Table{}, newProviderError(constants.ErrCodeTableNotFound, fmt.Errorf("sheet %s", id))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return entities.Table{}, newProviderError(constants.ErrCodeTableAccessDenied, fmt.Errorf("sheet %s", id))
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(resp.Body)
		return entities.Table{}, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
			Details: string(body),
		}
	}

	t, err := ReadCSVTable(table, resp.Body)
	if err != nil {
		return entities.Table{}, newProviderError(constants.ErrCodeInvalidDataFormat, err)
	}
	return t, nil
}

func (p *PublicSheetProvider) ReplaceTable(context.Context, entities.Table) error {
	return newProviderError(constants.ErrCodeReadOnlyProvider, nil)
}

// ReadCSVTable decodes a header row plus data rows. Short rows are padded
// with empty values; an empty input is an empty table.
func ReadCSVTable(name string, r io.Reader) (entities.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return entities.Table{}, err
	}

	t := entities.Table{Name: name, Rows: []entities.Row{}}
	if len(records) == 0 {
		return t, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	t.Columns = header

	for _, rec := range records[1:] {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row := make(entities.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSVTable encodes the table with its header in column order
func WriteCSVTable(w io.Writer, t entities.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
