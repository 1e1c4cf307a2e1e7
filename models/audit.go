package models

import "gorm.io/datatypes"

// AuditLogEntry records one state-changing operation. Rows are append-only;
// nothing updates or deletes them.
type AuditLogEntry struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     *uint          `gorm:"index" json:"user_id"`
	Action     string         `gorm:"size:64;not null" json:"action"`
	EntityType string         `gorm:"size:32" json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	Meta       datatypes.JSON `json:"meta"`
	CreatedAt  string         `gorm:"size:32;not null;autoCreateTime:false" json:"created_at"`
}

// TableName matches the singular historical name.
func (AuditLogEntry) TableName() string { return "audit_log" }
