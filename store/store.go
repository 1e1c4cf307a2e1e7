package store

import (
	"database/sql"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lotbones1-code/productv/models"
	"github.com/lotbones1-code/productv/utils"
)

// Store owns every read and write against the relational file. Constraint
// violations from the storage boundary are never swallowed here; they return
// to the caller as-is.
type Store struct {
	db *gorm.DB
}

// New wraps an initialized gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Seed creates the fixed users if missing. Safe to run on every startup.
func (s *Store) Seed(names []string) error {
	now := utils.NowTimestamp()
	for _, name := range names {
		user := models.User{Name: name, CreatedAt: now}
		if err := s.db.Where("name = ?", name).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

// UserByName looks a user up case-insensitively. Absent users surface as
// gorm.ErrRecordNotFound.
func (s *Store) UserByName(name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	if err := s.db.Where("lower(name) = lower(?)", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AllUsers returns every user ordered by name.
func (s *Store) AllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpsertCheckin inserts the day's check-in or, when the (user, day) row
// already exists, overwrites its note and created_at. The conflict clause
// gives last-write-wins with no application-level merge.
func (s *Store) UpsertCheckin(userID uint, day, note string) (*models.CheckIn, error) {
	row := models.CheckIn{
		UserID:    userID,
		Day:       day,
		Note:      note,
		CreatedAt: utils.NowTimestamp(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"note", "created_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return s.Checkin(userID, day)
}

// Checkin fetches a single day's check-in for a user.
func (s *Store) Checkin(userID uint, day string) (*models.CheckIn, error) {
	var row models.CheckIn
	if err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CheckinDays returns every day the user has checked in, newest first.
func (s *Store) CheckinDays(userID uint) ([]string, error) {
	var days []string
	err := s.db.Model(&models.CheckIn{}).
		Where("user_id = ?", userID).
		Order("day DESC").
		Pluck("day", &days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

// CountCheckinDaysSince counts check-in days with day >= startDay, inclusive.
// The unique (user, day) constraint makes the row count a distinct-day count.
func (s *Store) CountCheckinDaysSince(userID uint, startDay string) (int, error) {
	var count int64
	err := s.db.Model(&models.CheckIn{}).
		Where("user_id = ? AND day >= ?", userID, startDay).
		Count(&count).Error
	return int(count), err
}

// LastActivity returns the maximum created_at across check-ins and research
// entries, or "" when the user has never acted.
func (s *Store) LastActivity(userID uint) (string, error) {
	var last sql.NullString
	err := s.db.Raw(`SELECT MAX(created_at) FROM (
		SELECT created_at FROM checkins WHERE user_id = ?
		UNION ALL
		SELECT created_at FROM research_entries WHERE user_id = ?
	)`, userID, userID).Scan(&last).Error
	if err != nil {
		return "", err
	}
	return last.String, nil
}

// PresenceCounts returns per-day activity counts (check-ins plus research
// entries) for days >= startDay. Days without activity are absent from the
// map; the analytics layer zero-fills the window.
func (s *Store) PresenceCounts(userID uint, startDay string) (map[string]int, error) {
	var rows []struct {
		Day   string
		Count int
	}
	err := s.db.Raw(`SELECT day, COUNT(*) AS count FROM (
		SELECT day FROM checkins WHERE user_id = ? AND day >= ?
		UNION ALL
		SELECT day FROM research_entries WHERE user_id = ? AND day >= ?
	) GROUP BY day`, userID, startDay, userID, startDay).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Day] = r.Count
	}
	return counts, nil
}

// ResearchInput carries already-validated research fields. The request layer
// clamps confidence/minutes and filters links before this point.
type ResearchInput struct {
	Day          string
	Title        string
	Summary      string
	Tickers      string
	Links        []string
	Confidence   int
	MinutesSpent int
}

func encodeLinks(links []string) (datatypes.JSON, error) {
	if links == nil {
		links = []string{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// CreateResearch inserts a new entry owned by userID.
func (s *Store) CreateResearch(userID uint, in ResearchInput) (*models.ResearchEntry, error) {
	links, err := encodeLinks(in.Links)
	if err != nil {
		return nil, err
	}
	entry := models.ResearchEntry{
		UserID:       userID,
		Day:          in.Day,
		Title:        in.Title,
		Summary:      in.Summary,
		Tickers:      in.Tickers,
		Links:        links,
		Confidence:   in.Confidence,
		MinutesSpent: in.MinutesSpent,
		CreatedAt:    utils.NowTimestamp(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateResearch rewrites an entry's fields only when both id and owner
// match. A false return means no row qualified; callers treat that the same
// as a missing entry.
func (s *Store) UpdateResearch(id, userID uint, in ResearchInput) (bool, error) {
	links, err := encodeLinks(in.Links)
	if err != nil {
		return false, err
	}
	res := s.db.Model(&models.ResearchEntry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"title":         in.Title,
			"summary":       in.Summary,
			"tickers":       in.Tickers,
			"links":         links,
			"confidence":    in.Confidence,
			"minutes_spent": in.MinutesSpent,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteResearch removes an entry only when both id and owner match.
func (s *Store) DeleteResearch(id, userID uint) (bool, error) {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ResearchEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ResearchByID fetches an entry regardless of owner; callers compare
// ownership themselves.
func (s *Store) ResearchByID(id uint) (*models.ResearchEntry, error) {
	var entry models.ResearchEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ResearchForUser returns the user's own entries in the trailing window of
// days, newest created first.
func (s *Store) ResearchForUser(userID uint, days int) ([]models.ResearchEntry, error) {
	startDay := utils.DayRange(days, false)[0]
	var entries []models.ResearchEntry
	err := s.db.Where("user_id = ? AND day >= ?", userID, startDay).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FeedItem is one research entry augmented with its owner's display name and
// deserialized links.
type FeedItem struct {
	ID           uint           `json:"id"`
	UserID       uint           `json:"user_id"`
	UserName     string         `json:"user_name"`
	Day          string         `json:"day"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary"`
	Tickers      string         `json:"tickers"`
	Links        datatypes.JSON `json:"-"`
	LinkList     []string       `gorm:"-" json:"links"`
	Confidence   int            `json:"confidence"`
	MinutesSpent int            `json:"minutes_spent"`
	CreatedAt    string         `json:"created_at"`
}

// RecentResearch returns entries newest-created-first, optionally filtered by
// owner name ("All" or "" disables the filter) and a trailing day window
// (windowDays <= 0 disables it). Result size is capped at limit.
func (s *Store) RecentResearch(userName string, windowDays, limit int) ([]FeedItem, error) {
	q := s.db.Table("research_entries AS re").
		Select("re.id, re.user_id, u.name AS user_name, re.day, re.title, re.summary, re.tickers, re.links, re.confidence, re.minutes_spent, re.created_at").
		Joins("JOIN users u ON u.id = re.user_id")

	if userName != "" && !strings.EqualFold(userName, "All") {
		q = q.Where("lower(u.name) = lower(?)", userName)
	}
	if windowDays > 0 {
		startDay := utils.DayRange(windowDays, false)[0]
		q = q.Where("re.day >= ?", startDay)
	}

	var items []FeedItem
	if err := q.Order("re.created_at DESC").Limit(limit).Scan(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].LinkList = decodeLinks(items[i].Links)
	}
	return items, nil
}

func decodeLinks(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var links []string
	if err := json.Unmarshal(raw, &links); err != nil {
		return []string{}
	}
	return links
}

// WriteAudit appends one audit row. userID is nil for anonymous actions.
func (s *Store) WriteAudit(userID *uint, action, entityType string, entityID uint, meta map[string]interface{}) error {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	entry := models.AuditLogEntry{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Meta:       datatypes.JSON(raw),
		CreatedAt:  utils.NowTimestamp(),
	}
	return s.db.Create(&entry).Error
}
