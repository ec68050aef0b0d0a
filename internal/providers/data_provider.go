package providers

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// DataProvider defines the interface for remote table sources
type DataProvider interface {
	// FetchTable pulls the whole remote copy of a record table
	FetchTable(ctx context.Context, table string) (entities.Table, error)

	// ReplaceTable overwrites the remote copy with the given table
	ReplaceTable(ctx context.Context, table entities.Table) error

	// CanWrite reports whether ReplaceTable is supported
	CanWrite() bool

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(code string, err error) *ProviderError {
	return &ProviderError{
		Code:    code,
		Message: constants.GetErrorMessage(code),
		Err:     err,
	}
}

// stringifyField renders a remote cell as the string the record store keeps
func stringifyField(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, stringifyField(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// orderColumns puts the canonical columns of table first, then any extra
// remote fields alphabetically.
func orderColumns(table string, seen map[string]struct{}) []string {
	cols := make([]string, 0, len(seen))
	known := make(map[string]struct{})
	for _, c := range constants.DefaultColumns[table] {
		known[c] = struct{}{}
		if _, ok := seen[c]; ok {
			cols = append(cols, c)
		}
	}
	var extra []string
	for c := range seen {
		if _, ok := known[c]; !ok {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}
