package chat

import (
	"testing"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

func names(vs []domain.Vendor) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Acme Co.":        "acmeco",
		"ACME CO":         "acmeco",
		"  a-b_c 12 ":     "abc12",
		"Müller GmbH":     "müllergmbh",
		"टाटा स्टील":      "टाटास्टील",
		"株式会社 山田":         "株式会社山田",
		"!!!":             "",
		"Tata Steel Ltd.": "tatasteelltd",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMergeDeduplicatesAndSorts(t *testing.T) {
	existing := []domain.Vendor{{Name: "Acme Co.", Rating: domain.Float64(3)}}
	incoming := []domain.Vendor{
		{Name: "ACME CO", Rating: domain.Float64(5)},
		{Name: "Beta", Rating: nil},
		{Name: "Gamma", Rating: domain.Float64(5)},
	}

	got := Merge(existing, incoming)
	want := []string{"Gamma", "Acme Co.", "Beta"}
	if len(got) != len(want) {
		t.Fatalf("Merge = %v, want %v", names(got), want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("Merge[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
	if got[1].RatingValue() != 3 {
		t.Errorf("existing record was replaced: rating = %v, want 3", got[1].RatingValue())
	}
	if got[0].ID != "gamma" {
		t.Errorf("ID = %q, want gamma", got[0].ID)
	}
}

func TestMergeSortsRatingsDescendingNilLast(t *testing.T) {
	incoming := []domain.Vendor{
		{Name: "Three", Rating: domain.Float64(3)},
		{Name: "None"},
		{Name: "Five", Rating: domain.Float64(5)},
	}
	got := names(Merge(nil, incoming))
	want := []string{"Five", "Three", "None"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Merge = %v, want %v", got, want)
		}
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	batch := []domain.Vendor{
		{Name: "Acme", Rating: domain.Float64(4)},
		{Name: "Beta", Rating: domain.Float64(4.5)},
	}
	once := Merge(nil, batch)
	twice := Merge(once, batch)
	if len(twice) != len(once) {
		t.Fatalf("len after second merge = %d, want %d", len(twice), len(once))
	}
	for i := range once {
		if once[i].Name != twice[i].Name {
			t.Errorf("order changed at %d: %q vs %q", i, once[i].Name, twice[i].Name)
		}
	}
}

func TestMergeKeepsNonLatinNames(t *testing.T) {
	incoming := []domain.Vendor{
		{Name: "टाटा स्टील", Rating: domain.Float64(4)},
		{Name: "株式会社", Rating: domain.Float64(4.5)},
		{Name: "टाटा  स्टील."},
	}
	got := Merge(nil, incoming)
	want := []string{"株式会社", "टाटा स्टील"}
	if len(got) != len(want) {
		t.Fatalf("Merge = %v, want %v", names(got), want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("Merge[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
	if got[0].ID != "株式会社" || got[1].ID != "टाटास्टील" {
		t.Errorf("IDs = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestMergeEmptyKeyIsAppendedOnceAndKeepsInputs(t *testing.T) {
	existing := []domain.Vendor{{Name: "Acme"}}
	incoming := []domain.Vendor{{Name: "---"}, {Name: ""}, {Name: "Beta"}}

	got := Merge(existing, incoming)
	want := []string{"Acme", "---", "Beta"}
	if len(got) != len(want) {
		t.Fatalf("Merge = %v, want %v", names(got), want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("Merge[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
	if got[1].ID != "" {
		t.Errorf("ID = %q, want empty key", got[1].ID)
	}
	if existing[0].ID != "" {
		t.Errorf("existing slice was modified: ID = %q", existing[0].ID)
	}
	if len(existing) != 1 {
		t.Errorf("len(existing) = %d, want 1", len(existing))
	}
	if again := Merge(got, incoming); len(again) != len(got) {
		t.Errorf("second merge len = %d, want %d", len(again), len(got))
	}
}

func TestMergeWithinBatchDuplicates(t *testing.T) {
	got := Merge(nil, []domain.Vendor{{Name: "Acme Ltd"}, {Name: "acme ltd."}})
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}
