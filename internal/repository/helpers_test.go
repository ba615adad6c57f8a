package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/user/seriestrack/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存 SQLite 库
func newTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(tb, err)

	sqlDB, err := db.DB()
	require.NoError(tb, err)
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(tb, Migrate(db))
	return db
}

// stepClock 每次调用前进一秒
type stepClock struct {
	t time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func createUser(tb testing.TB, repo *UserRepository, email string) *model.User {
	tb.Helper()
	u := &model.User{Name: "Tester", Email: email, PasswordHash: "x"}
	require.NoError(tb, repo.Create(context.Background(), u))
	return u
}

func ptr[T any](v T) *T { return &v }

func seriesInput(title string, rating float64, seasons, total, watched int, status model.Status) model.SeriesInput {
	return model.SeriesInput{
		Title:           &title,
		Rating:          &rating,
		TotalSeasons:    &seasons,
		TotalEpisodes:   &total,
		WatchedEpisodes: &watched,
		Status:          &status,
	}
}
