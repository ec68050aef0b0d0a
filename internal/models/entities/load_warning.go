package entities

import "fmt"

// LoadWarning records a row that failed validation when tables were loaded.
type LoadWarning struct {
	Table    string `json:"table"`
	Row      int    `json:"row"`
	RecordID string `json:"record_id,omitempty"`
	Message  string `json:"message"`
}

func (w LoadWarning) String() string {
	if w.RecordID != "" {
		return fmt.Sprintf("%s[%d] %s: %s", w.Table, w.Row, w.RecordID, w.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", w.Table, w.Row, w.Message)
}
