package service

import (
	"errors"
	"strings"
	"time"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidRevealTarget is returned when a reveal lacks a section, item or
// visitor.
var ErrInvalidRevealTarget = errors.New("invalid reveal section, item or visitor")

// StatsService records card reveals and page renders for the admin
// dashboard.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a StatsService.
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// RecordReveal counts a reveal of one card by one visitor and returns the
// updated totals for the card.
func (s *StatsService) RecordReveal(section, itemKey, visitorID string, now time.Time) (*db.RevealStatistic, error) {
	section = strings.TrimSpace(section)
	itemKey = strings.TrimSpace(itemKey)
	if section == "" || itemKey == "" || visitorID == "" {
		return nil, ErrInvalidRevealTarget
	}

	var stats db.RevealStatistic

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		visit := db.RevealVisit{
			Section:        section,
			ItemKey:        itemKey,
			VisitorID:      visitorID,
			LastRevealedAt: now,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "section"}, {Name: "item_key"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&visit)
		if insert.Error != nil {
			return insert.Error
		}

		isNewVisitor := insert.RowsAffected == 1
		if !isNewVisitor {
			if err := tx.Model(&db.RevealVisit{}).
				Where("section = ? AND item_key = ? AND visitor_id = ?", section, itemKey, visitorID).
				Update("last_revealed_at", now).Error; err != nil {
				return err
			}
		}

		statsResult := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("section = ? AND item_key = ?", section, itemKey).
			First(&stats)

		switch {
		case errors.Is(statsResult.Error, gorm.ErrRecordNotFound):
			stats = db.RevealStatistic{Section: section, ItemKey: itemKey}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		case statsResult.Error != nil:
			return statsResult.Error
		}

		stats.Reveals++
		if isNewVisitor {
			stats.UniqueVisitors++
		}
		stats.LastRevealedAt = now

		return tx.Save(&stats).Error
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

// RecordPageView counts one page render in the hour bucket of now.
func (s *StatsService) RecordPageView(visitorID string, now time.Time) error {
	hour := now.UTC().Truncate(time.Hour)

	return s.db.Transaction(func(tx *gorm.DB) error {
		isNewVisitor := false
		if visitorID != "" {
			insert := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&db.HourlyVisitor{Hour: hour, VisitorID: visitorID})
			if insert.Error != nil {
				return insert.Error
			}
			isNewVisitor = insert.RowsAffected == 1
		}

		var snapshot db.HourlyPageView
		result := tx.Where("hour = ?", hour).First(&snapshot)
		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			snapshot = db.HourlyPageView{Hour: hour}
		case result.Error != nil:
			return result.Error
		}

		snapshot.PageViews++
		if isNewVisitor {
			snapshot.UniqueVisitors++
		}
		return tx.Save(&snapshot).Error
	})
}

// Overview 汇总卡片曝光与页面访问数据。
type Overview struct {
	TotalReveals   uint64
	UniqueVisitors uint64
	ItemCount      int64
	TopItems       []TopItemStat
	Sections       []SectionStat
	Hourly         []HourlyStat
}

// TopItemStat describes one of the most revealed cards.
type TopItemStat struct {
	Section        string `json:"section"`
	ItemKey        string `json:"itemKey"`
	Reveals        uint64 `json:"reveals"`
	UniqueVisitors uint64 `json:"uniqueVisitors"`
}

// SectionStat totals reveals per section.
type SectionStat struct {
	Section string `json:"section"`
	Reveals uint64 `json:"reveals"`
	Items   int64  `json:"items"`
}

// HourlyStat is one hour bucket of page renders.
type HourlyStat struct {
	Hour           time.Time `json:"hour"`
	PageViews      uint64    `json:"pageViews"`
	UniqueVisitors uint64    `json:"uniqueVisitors"`
}

// Overview aggregates reveal totals, the top cards and the page views of
// the last 24 hours before now.
func (s *StatsService) Overview(limit int, now time.Time) (Overview, error) {
	if limit <= 0 {
		limit = 5
	}

	var overview Overview

	var totals struct {
		Reveals uint64
	}
	if err := s.db.Model(&db.RevealStatistic{}).
		Select("COALESCE(SUM(reveals), 0) AS reveals").
		Scan(&totals).Error; err != nil {
		return overview, err
	}
	overview.TotalReveals = totals.Reveals

	var uniqueVisitors int64
	if err := s.db.Model(&db.RevealVisit{}).Distinct("visitor_id").Count(&uniqueVisitors).Error; err != nil {
		return overview, err
	}
	overview.UniqueVisitors = uint64(uniqueVisitors)

	if err := s.db.Model(&db.RevealStatistic{}).Count(&overview.ItemCount).Error; err != nil {
		return overview, err
	}

	if err := s.db.Model(&db.RevealStatistic{}).
		Select("section, item_key, reveals, unique_visitors").
		Order("reveals DESC, section, item_key").
		Limit(limit).
		Scan(&overview.TopItems).Error; err != nil {
		return overview, err
	}

	if err := s.db.Model(&db.RevealStatistic{}).
		Select("section, COALESCE(SUM(reveals), 0) AS reveals, COUNT(*) AS items").
		Group("section").
		Order("reveals DESC, section").
		Scan(&overview.Sections).Error; err != nil {
		return overview, err
	}

	since := now.UTC().Truncate(time.Hour).Add(-23 * time.Hour)
	var hourly []db.HourlyPageView
	if err := s.db.Where("hour >= ?", since).Order("hour").Find(&hourly).Error; err != nil {
		return overview, err
	}
	for _, h := range hourly {
		overview.Hourly = append(overview.Hourly, HourlyStat{
			Hour:           h.Hour,
			PageViews:      h.PageViews,
			UniqueVisitors: h.UniqueVisitors,
		})
	}

	return overview, nil
}
