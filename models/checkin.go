package models

// CheckIn is a user's daily attendance record. The (user_id, day) pair is
// unique: a repeat check-in on the same day overwrites note and created_at
// instead of adding a row. Day is a canonical YYYY-MM-DD UTC string, so
// lexicographic comparisons are chronological.
type CheckIn struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_checkins_user_day" json:"user_id"`
	Day       string `gorm:"size:10;not null;uniqueIndex:idx_checkins_user_day" json:"day"`
	Note      string `gorm:"size:2000" json:"note"`
	CreatedAt string `gorm:"size:32;not null;autoCreateTime:false" json:"created_at"`
}

// TableName keeps the short historical table name.
func (CheckIn) TableName() string { return "checkins" }
