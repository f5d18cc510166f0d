// File: internal/domain/vault_entry.go
package domain

import "time"

// VaultEntry is one key/value row of the SQL vault backend. Value holds the
// JSON encoded session list for the key.
type VaultEntry struct {
	Key       string `gorm:"column:vault_key;primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
