package db

import "time"

// RevealStatistic 汇总卡片维度的曝光数据。
type RevealStatistic struct {
	ID             uint   `gorm:"primaryKey"`
	Section        string `gorm:"size:32;uniqueIndex:idx_reveal_stat_item"`
	ItemKey        string `gorm:"size:128;uniqueIndex:idx_reveal_stat_item"`
	Reveals        uint64 `gorm:"default:0"`
	UniqueVisitors uint64 `gorm:"default:0"`
	LastRevealedAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (RevealStatistic) TableName() string {
	return "reveal_statistics"
}

// RevealVisit 记录访客看到过的卡片，用于曝光去重。
type RevealVisit struct {
	ID             uint   `gorm:"primaryKey"`
	Section        string `gorm:"size:32;uniqueIndex:idx_reveal_visit"`
	ItemKey        string `gorm:"size:128;uniqueIndex:idx_reveal_visit"`
	VisitorID      string `gorm:"size:64;uniqueIndex:idx_reveal_visit"`
	LastRevealedAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (RevealVisit) TableName() string {
	return "reveal_visits"
}
