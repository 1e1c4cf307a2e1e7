// Package analytics derives streaks, completion ratios and presence maps
// from the persistence layer. Every function is a pure read: idempotent, no
// side effects, always computed live from current rows.
package analytics

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/lotbones1-code/productv/models"
	"github.com/lotbones1-code/productv/store"
	"github.com/lotbones1-code/productv/utils"
)

// Service computes read-side figures over the store.
type Service struct {
	store *store.Store
}

// New creates an analytics service backed by st.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Completion summarizes check-in coverage of a trailing window.
type Completion struct {
	TotalDays     int `json:"totalDays"`
	CompletedDays int `json:"completedDays"`
	Percent       int `json:"percent"`
}

// DayCount is one heatmap cell.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// UserStats aggregates everything the dashboards show for one user.
type UserStats struct {
	User         models.User `json:"user"`
	HasToday     bool        `json:"hasToday"`
	LastActivity string      `json:"lastActivity"`
	Streak       int         `json:"streak"`
	Completion7  Completion  `json:"completion7"`
	Completion30 Completion  `json:"completion30"`
	Completion90 Completion  `json:"completion90"`
	Heatmap      []DayCount  `json:"heatmap"`
}

// Streak counts consecutive calendar days with a check-in, walking backward
// from today. A gap on today itself yields 0.
func (s *Service) Streak(userID uint) (int, error) {
	days, err := s.store.CheckinDays(userID)
	if err != nil {
		return 0, err
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}

	cursor, err := time.Parse(utils.DayFormat, utils.CurrentDay())
	if err != nil {
		return 0, err
	}
	streak := 0
	for {
		if _, ok := set[cursor.Format(utils.DayFormat)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// Completion reports check-in coverage for the trailing windowDays calendar
// days ending today, inclusive. Non-positive windows short-circuit to zeros
// without touching storage. Percent rounds half away from zero.
func (s *Service) Completion(userID uint, windowDays int) (Completion, error) {
	if windowDays <= 0 {
		return Completion{}, nil
	}
	startDay := utils.DayRange(windowDays, false)[0]
	completed, err := s.store.CountCheckinDaysSince(userID, startDay)
	if err != nil {
		return Completion{}, err
	}
	return Completion{
		TotalDays:     windowDays,
		CompletedDays: completed,
		Percent:       int(math.Round(float64(completed) / float64(windowDays) * 100)),
	}, nil
}

// PresenceMap returns exactly daysBack cells, one per calendar day in the
// trailing window, chronologically ordered. Days without activity stay 0.
func (s *Service) PresenceMap(userID uint, daysBack int) ([]DayCount, error) {
	if daysBack <= 0 {
		return nil, nil
	}
	days := utils.DayRange(daysBack, false)
	counts, err := s.store.PresenceCounts(userID, days[0])
	if err != nil {
		return nil, err
	}
	cells := make([]DayCount, 0, len(days))
	for _, day := range days {
		cells = append(cells, DayCount{Day: day, Count: counts[day]})
	}
	return cells, nil
}

// RecentFeed returns research entries newest-first. "All" (or empty) as the
// filter disables per-user filtering.
func (s *Service) RecentFeed(filterUserName string, windowDays, limit int) ([]store.FeedItem, error) {
	return s.store.RecentResearch(filterUserName, windowDays, limit)
}

// UserStats computes the full dashboard figure set for one user.
func (s *Service) UserStats(user models.User) (*UserStats, error) {
	streak, err := s.Streak(user.ID)
	if err != nil {
		return nil, err
	}
	c7, err := s.Completion(user.ID, 7)
	if err != nil {
		return nil, err
	}
	c30, err := s.Completion(user.ID, 30)
	if err != nil {
		return nil, err
	}
	c90, err := s.Completion(user.ID, 90)
	if err != nil {
		return nil, err
	}
	heatmap, err := s.PresenceMap(user.ID, 90)
	if err != nil {
		return nil, err
	}
	last, err := s.store.LastActivity(user.ID)
	if err != nil {
		return nil, err
	}

	hasToday := true
	if _, err := s.store.Checkin(user.ID, utils.CurrentDay()); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasToday = false
	}

	return &UserStats{
		User:         user,
		HasToday:     hasToday,
		LastActivity: last,
		Streak:       streak,
		Completion7:  c7,
		Completion30: c30,
		Completion90: c90,
		Heatmap:      heatmap,
	}, nil
}
