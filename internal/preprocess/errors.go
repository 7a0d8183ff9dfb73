// Package preprocess cleans and normalizes raw skill records into the canonical schema.
package preprocess

import "fmt"

// ContractError reports a record that cannot be normalized into the canonical
// schema. Missing or unresolvable level and context are contract violations,
// never silently defaulted.
type ContractError struct {
	Index    int    // position in the input slice
	RecordID string // may be empty when the record carries no id
	Field    string
	Message  string
}

func (e *ContractError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("record %q (index %d): field %s: %s", e.RecordID, e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("record at index %d: field %s: %s", e.Index, e.Field, e.Message)
}
