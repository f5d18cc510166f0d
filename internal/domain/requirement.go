// File: internal/domain/requirement.go
package domain

// Requirement is the sourcing brief captured before the first model turn.
// It is never re-validated after the conversation starts.
type Requirement struct {
	ID                string `json:"id,omitempty"`
	ItemName          string `json:"itemName"`
	Description       string `json:"description"`
	Quantity          string `json:"quantity,omitempty"`
	PreferredLocation string `json:"preferredLocation"`
	AdditionalSpecs   string `json:"additionalSpecs,omitempty"`
}

// DefaultLocation is preselected in the intake form.
const DefaultLocation = "Hyderabad"
