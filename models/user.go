package models

// User is one of the fixed pair of tracked members. Rows are seeded once at
// startup and never mutated or deleted afterwards.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt string `gorm:"size:32;not null;autoCreateTime:false" json:"created_at"`
}
