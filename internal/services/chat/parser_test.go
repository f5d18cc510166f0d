package chat

import (
	"errors"
	"testing"
)

func TestParseStrictExtractsVendors(t *testing.T) {
	raw := "Market summary.\n\n```json\n[{\"name\":\"Acme\",\"rating\":4.5,\"city\":\"Pune\"},{\"name\":\"Beta Corp\",\"rating\":\"3.9\"}]\n```\n"

	reply, err := ParseStrict(raw)
	if err != nil {
		t.Fatalf("ParseStrict: %v", err)
	}
	if reply.Prose != "Market summary." {
		t.Errorf("Prose = %q, want %q", reply.Prose, "Market summary.")
	}
	if len(reply.Vendors) != 2 {
		t.Fatalf("len(Vendors) = %d, want 2", len(reply.Vendors))
	}
	if reply.Vendors[0].City != "Pune" {
		t.Errorf("City = %q, want Pune", reply.Vendors[0].City)
	}
	if got := reply.Vendors[1].RatingValue(); got != 3.9 {
		t.Errorf("string rating = %v, want 3.9", got)
	}
}

func TestParseStrictNoBlock(t *testing.T) {
	reply, err := ParseStrict("  What quantity do you need?  ")
	if !errors.Is(err, ErrNoFencedBlock) {
		t.Fatalf("err = %v, want ErrNoFencedBlock", err)
	}
	if reply.Prose != "What quantity do you need?" {
		t.Errorf("Prose = %q", reply.Prose)
	}
	if reply.Vendors == nil || len(reply.Vendors) != 0 {
		t.Errorf("Vendors = %#v, want empty non-nil", reply.Vendors)
	}
}

func TestParseStrictMalformedBlock(t *testing.T) {
	cases := map[string]string{
		"broken json": "Intro\n```json\n[{\"name\": \"Acme\",]\n```",
		"object":      "Intro\n```json\n{\"name\": \"Acme\"}\n```",
		"empty":       "Intro\n```json\n\n```",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			reply, err := ParseStrict(raw)
			if !errors.Is(err, ErrMalformedVendorJSON) {
				t.Fatalf("err = %v, want ErrMalformedVendorJSON", err)
			}
			if reply.Prose != "Intro" {
				t.Errorf("Prose = %q, want Intro", reply.Prose)
			}
			if len(reply.Vendors) != 0 {
				t.Errorf("len(Vendors) = %d, want 0", len(reply.Vendors))
			}
		})
	}
}

func TestParseStrictUsesLastBlock(t *testing.T) {
	raw := "Example:\n```json\n[{\"name\":\"Sample\"}]\n```\nResults:\n```JSON\n[{\"name\":\"Real Vendor\"}]\n```"

	reply, err := ParseStrict(raw)
	if err != nil {
		t.Fatalf("ParseStrict: %v", err)
	}
	if len(reply.Vendors) != 1 || reply.Vendors[0].Name != "Real Vendor" {
		t.Errorf("Vendors = %+v, want [Real Vendor]", reply.Vendors)
	}
	want := "Example:\n```json\n[{\"name\":\"Sample\"}]\n```\nResults:"
	if reply.Prose != want {
		t.Errorf("Prose = %q, want %q", reply.Prose, want)
	}
}

func TestParseStrictNullArray(t *testing.T) {
	reply, err := ParseStrict("None found.\n```json\nnull\n```")
	if err != nil {
		t.Fatalf("ParseStrict: %v", err)
	}
	if reply.Vendors == nil || len(reply.Vendors) != 0 {
		t.Errorf("Vendors = %#v, want empty non-nil", reply.Vendors)
	}
}

func TestParseIgnoresBadRating(t *testing.T) {
	reply, err := ParseStrict("x\n```json\n[{\"name\":\"Acme\",\"rating\":\"excellent\"},{\"name\":\"Beta\",\"rating\":\"4/5\"}]\n```")
	if err != nil {
		t.Fatalf("ParseStrict: %v", err)
	}
	if reply.Vendors[0].Rating != nil {
		t.Errorf("Rating = %v, want nil", *reply.Vendors[0].Rating)
	}
	if got := reply.Vendors[1].RatingValue(); got != 4 {
		t.Errorf("Rating = %v, want 4", got)
	}
}

type recordingLogger struct {
	warns int
}

func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}
func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Warn(string, ...interface{})  { l.warns++ }

func TestParseLogsOnlyMalformedBlocks(t *testing.T) {
	logger := &recordingLogger{}
	p := NewReplyParser(logger)

	p.Parse("plain question?")
	if logger.warns != 0 {
		t.Errorf("warns after plain reply = %d, want 0", logger.warns)
	}

	reply := p.Parse("Intro\n```json\n[oops\n```")
	if logger.warns != 1 {
		t.Errorf("warns after malformed reply = %d, want 1", logger.warns)
	}
	if reply.Prose != "Intro" {
		t.Errorf("Prose = %q, want Intro", reply.Prose)
	}
}
