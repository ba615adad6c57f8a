package repository

import (
	"time"

	"github.com/user/seriestrack/internal/model"
	"gorm.io/gorm"
)

// seriesRecord 仅用于建表，读写走 SeriesRepository 的 SQL
type seriesRecord struct {
	ID              int64      `gorm:"primaryKey"`
	Title           string     `gorm:"type:varchar(200);not null"`
	Rating          float64    `gorm:"type:numeric(3,1);not null;check:chk_series_rating,rating >= 0 AND rating <= 10"`
	TotalSeasons    int        `gorm:"not null;check:chk_series_total_seasons,total_seasons >= 1"`
	TotalEpisodes   int        `gorm:"not null;check:chk_series_total_episodes,total_episodes >= 1"`
	WatchedEpisodes int        `gorm:"not null;check:chk_series_watched_episodes,watched_episodes >= 0 AND watched_episodes <= total_episodes"`
	Status          string     `gorm:"type:varchar(16);not null;check:chk_series_status,status IN ('planned', 'watching', 'completed')"`
	UserID          int64      `gorm:"not null;index:idx_series_user_created,priority:1"`
	User            model.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time  `gorm:"not null;index:idx_series_user_created,priority:2"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

func (seriesRecord) TableName() string { return "series" }

// Migrate 建表 / 补齐缺失的列和约束
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &seriesRecord{})
}
