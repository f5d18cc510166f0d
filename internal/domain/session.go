// File: internal/domain/session.go
package domain

import "time"

// UntitledSession is the vault title used when no item name was captured.
const UntitledSession = "Untitled Sourcing Request"

// VaultSession is a saved snapshot of one sourcing task. The vault owns it;
// whatever the client holds in memory is a working copy.
type VaultSession struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Title       string      `json:"title"`
	Requirement Requirement `json:"requirement"`
	Messages    []Message   `json:"messages"`
	Vendors     []Vendor    `json:"vendors"`
}

// SessionTitle derives the vault title from a requirement.
func SessionTitle(req Requirement) string {
	if req.ItemName == "" {
		return UntitledSession
	}
	return req.ItemName
}
