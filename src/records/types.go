package records

import (
	"errors"
	"strings"
	"time"
)

// ObjectType tags what a ConfigRecord governs.
type ObjectType string

const (
	// ProtectedRole members' display names may not be impersonated.
	ProtectedRole ObjectType = "protected_role"
	// AllowlistRole holders are never evaluated.
	AllowlistRole ObjectType = "allowlist_role"
	// AllowlistUser is a single exempt user.
	AllowlistUser ObjectType = "allowlist_user"
)

// ObjectTypes lists the canonical persisted values.
var ObjectTypes = []ObjectType{ProtectedRole, AllowlistRole, AllowlistUser}

// Valid reports whether t is a canonical type.
func (t ObjectType) Valid() bool {
	switch t {
	case ProtectedRole, AllowlistRole, AllowlistUser:
		return true
	}
	return false
}

func (t ObjectType) String() string { return string(t) }

// ConfigRecord is one protection or exemption entry, scoped to a Discord server.
// Names are denormalized for reporting and never used for matching.
type ConfigRecord struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ObjectType        ObjectType `gorm:"size:32;not null;uniqueIndex:idx_config_record_scope,priority:1" json:"object_type"`
	DiscordObjectID   string     `gorm:"size:64;not null;uniqueIndex:idx_config_record_scope,priority:2" json:"object_id"`
	DiscordObjectName string     `gorm:"size:128" json:"object_name,omitempty"`
	DiscordServerID   string     `gorm:"size:64;not null;uniqueIndex:idx_config_record_scope,priority:3;index" json:"server_id"`
	DiscordServerName string     `gorm:"size:128" json:"server_name,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (ConfigRecord) TableName() string {
	return "config_records"
}

var (
	ErrInvalidRecord     = errors.New("records: invalid record")
	ErrUnknownObjectType = errors.New("records: unknown object type")
)

// Validate checks the fields that make up the uniqueness scope.
func (r ConfigRecord) Validate() error {
	switch {
	case !r.ObjectType.Valid():
		return ErrUnknownObjectType
	case strings.TrimSpace(r.DiscordObjectID) == "":
		return errors.Join(ErrInvalidRecord, errors.New("object id is empty"))
	case strings.TrimSpace(r.DiscordServerID) == "":
		return errors.Join(ErrInvalidRecord, errors.New("server id is empty"))
	}
	return nil
}
