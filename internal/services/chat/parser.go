// File: internal/services/chat/parser.go
package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// fencedJSON matches a ```json block up to the next closing fence. The label
// is case-insensitive; the newline before the closing fence is optional.
var fencedJSON = regexp.MustCompile("(?is)```json[ \\t]*\\r?\\n(.*?)\\r?\\n?```")

// ReplyParser extracts the vendor array embedded in a model answer.
type ReplyParser struct {
	logger Logger
}

// NewReplyParser creates a parser. A nil logger discards parse failures.
func NewReplyParser(logger Logger) *ReplyParser {
	if logger == nil {
		logger = nopLogger{}
	}
	return &ReplyParser{logger: logger}
}

// Parse never fails. A malformed block is logged, stripped from the prose
// and contributes no vendors.
func (p *ReplyParser) Parse(raw string) Reply {
	reply, err := ParseStrict(raw)
	if err == nil || errors.Is(err, ErrNoFencedBlock) {
		return reply
	}
	p.logger.Warn("failed to parse vendor JSON", "error", err, "reply_preview", TruncateText(raw, 120))
	return reply
}

// ParseStrict splits raw into prose and vendors and reports which failure
// mode, if any, applied. The returned Reply is usable in every case:
//   - ErrNoFencedBlock: prose is raw trimmed, no vendors
//   - ErrMalformedVendorJSON (inside a ChatError): prose has the block removed, no vendors
func ParseStrict(raw string) (Reply, error) {
	reply := Reply{Vendors: []domain.Vendor{}}

	matches := fencedJSON.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		reply.Prose = strings.TrimSpace(raw)
		return reply, ErrNoFencedBlock
	}

	// The last block is the one the result protocol puts at the end.
	last := matches[len(matches)-1]
	blockStart, blockEnd := last[0], last[1]
	body := raw[last[2]:last[3]]

	reply.Prose = strings.TrimSpace(raw[:blockStart] + raw[blockEnd:])

	vendors, err := decodeVendors(body)
	if err != nil {
		return reply, &ChatError{Type: ErrTypeParse, Operation: "parse", Message: err.Error(), Cause: ErrMalformedVendorJSON}
	}
	reply.Vendors = vendors
	return reply, nil
}

func decodeVendors(body string) ([]domain.Vendor, error) {
	trimmed := bytes.TrimSpace([]byte(body))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty block")
	}
	if trimmed[0] != '[' && !bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("expected a JSON array")
	}

	var vendors []domain.Vendor
	if err := json.Unmarshal(trimmed, &vendors); err != nil {
		return nil, err
	}
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	return vendors, nil
}
