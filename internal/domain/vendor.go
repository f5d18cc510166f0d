// File: internal/domain/vendor.go
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Vendor is one supplier record parsed out of a model reply. Name is the
// natural key; every other field is optional and stays empty when the model
// did not supply it.
type Vendor struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Contact  string   `json:"contact,omitempty"`
	Address  string   `json:"address,omitempty"`
	Website  string   `json:"website,omitempty"`
	City     string   `json:"city,omitempty"`
	Country  string   `json:"country,omitempty"`
	Category string   `json:"category,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Verified *bool    `json:"verified,omitempty"`
}

// RatingValue returns the rating, or 0 when the vendor has none.
func (v Vendor) RatingValue() float64 {
	if v.Rating == nil {
		return 0
	}
	return *v.Rating
}

// UnmarshalJSON accepts ratings written either as numbers or as numeric
// strings ("4.5"). Any other rating value is treated as absent.
func (v *Vendor) UnmarshalJSON(data []byte) error {
	type plain Vendor
	aux := struct {
		*plain
		Rating json.RawMessage `json:"rating,omitempty"`
	}{plain: (*plain)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.Rating = parseRating(aux.Rating)
	return nil
}

func parseRating(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "/5")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// Float64 is a helper for building optional ratings in literals.
func Float64(f float64) *float64 { return &f }

// Bool is a helper for building optional flags in literals.
func Bool(b bool) *bool { return &b }
