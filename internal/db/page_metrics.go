package db

import "time"

// HourlyPageView 记录每小时的页面渲染次数与访客数。
type HourlyPageView struct {
	ID             uint      `gorm:"primaryKey"`
	Hour           time.Time `gorm:"uniqueIndex"`
	PageViews      uint64    `gorm:"default:0"`
	UniqueVisitors uint64    `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (HourlyPageView) TableName() string {
	return "hourly_page_views"
}

// HourlyVisitor 记录每小时出现过的访客，用于 UV 去重。
type HourlyVisitor struct {
	ID        uint      `gorm:"primaryKey"`
	Hour      time.Time `gorm:"uniqueIndex:idx_hour_visitor"`
	VisitorID string    `gorm:"size:64;uniqueIndex:idx_hour_visitor"`
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (HourlyVisitor) TableName() string {
	return "hourly_visitors"
}
