package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ResearchEntry is a free-form market research note. A user may log any
// number per day; the row is owned exclusively by its creator. Confidence and
// minutes are clamped by the request layer before storage; the check
// constraints are the storage boundary's last line and violations propagate.
type ResearchEntry struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index:idx_re_user_day" json:"user_id"`
	Day          string         `gorm:"size:10;not null;index:idx_re_user_day;index:idx_re_day" json:"day"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Summary      string         `gorm:"size:5000;not null" json:"summary"`
	Tickers      string         `gorm:"size:255" json:"tickers"`
	Links        datatypes.JSON `json:"links"`
	Confidence   int            `gorm:"check:confidence BETWEEN 1 AND 5" json:"confidence"`
	MinutesSpent int            `gorm:"check:minutes_spent BETWEEN 0 AND 1440" json:"minutes_spent"`
	CreatedAt    string         `gorm:"size:32;not null;autoCreateTime:false" json:"created_at"`
}

// LinkList decodes the stored links into an ordered slice for views.
func (r *ResearchEntry) LinkList() []string {
	if len(r.Links) == 0 {
		return nil
	}
	var links []string
	if err := json.Unmarshal(r.Links, &links); err != nil {
		return nil
	}
	return links
}
