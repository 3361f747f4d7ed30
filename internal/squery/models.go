// Package squery persists the configuration a compile depends on:
// saved squeries (squery.<name>), user-defined header prefixes, and
// arbitrary config scalars, all addressed by Backend.ConfigGet and
// Backend.UserPrefixGet (spec.md §6).
package squery

import (
	"time"

	"gorm.io/datatypes"
)

// ConfigEntry is a single "key = value" configuration row, the
// general-purpose backing store for Backend.ConfigGet. Saved squeries
// are stored here under the "squery.<name>" key, matching notmuch's
// own config-file convention for named queries.
type ConfigEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// UserPrefix is a user-defined header name, registered out of band
// (e.g. by an indexing pass over custom mail headers) and consulted
// by dispatch rule 6 (spec.md §4.3).
type UserPrefix struct {
	Name     string `gorm:"primaryKey;type:varchar(255)"`
	Metadata datatypes.JSON `gorm:"type:jsonb"`
}
