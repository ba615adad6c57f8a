package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
)

func TestSeriesFromRow_DriverShapes(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  Row
	}{
		{
			name: "postgres",
			row: Row{
				"id": int64(1), "user_id": int64(2), "title": "Dark", "rating": "8.5",
				"total_seasons": int64(3), "total_episodes": int64(26), "watched_episodes": int64(10),
				"status": "watching", "created_at": ts, "updated_at": ts,
			},
		},
		{
			name: "sqlite",
			row: Row{
				"id": int64(1), "user_id": int64(2), "title": []byte("Dark"), "rating": 8.5,
				"total_seasons": int64(3), "total_episodes": int64(26), "watched_episodes": int64(10),
				"status": []byte("watching"), "created_at": "2024-03-01 12:00:00+00:00", "updated_at": "2024-03-01 12:00:00+00:00",
			},
		},
		{
			name: "int32 columns",
			row: Row{
				"id": int64(1), "user_id": int64(2), "title": "Dark", "rating": "8.50",
				"total_seasons": int32(3), "total_episodes": int32(26), "watched_episodes": int32(10),
				"status": "watching", "created_at": ts.Format(time.RFC3339Nano), "updated_at": ts,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := seriesFromRow(tt.row)
			require.NoError(t, err)
			assert.Equal(t, int64(1), s.ID)
			assert.Equal(t, int64(2), s.UserID)
			assert.Equal(t, model.SeriesFields{
				Title: "Dark", Rating: 8.5, TotalSeasons: 3, TotalEpisodes: 26,
				WatchedEpisodes: 10, Status: model.StatusWatching,
			}, s.SeriesFields)
			assert.True(t, ts.Equal(s.CreatedAt))
			assert.True(t, ts.Equal(s.UpdatedAt))
		})
	}
}

func TestSeriesFromRow_Errors(t *testing.T) {
	base := func() Row {
		return Row{
			"id": int64(1), "user_id": int64(2), "title": "Dark", "rating": "8.5",
			"total_seasons": int64(3), "total_episodes": int64(26), "watched_episodes": int64(10),
			"status": "watching", "created_at": time.Now(), "updated_at": time.Now(),
		}
	}

	row := base()
	row["status"] = "dropped"
	_, err := seriesFromRow(row)
	assert.ErrorIs(t, err, apperr.ErrStorage)

	row = base()
	row["rating"] = "n/a"
	_, err = seriesFromRow(row)
	assert.ErrorIs(t, err, apperr.ErrStorage)

	row = base()
	delete(row, "created_at")
	_, err = seriesFromRow(row)
	assert.ErrorIs(t, err, apperr.ErrStorage)
}

func TestRatingToStorage(t *testing.T) {
	assert.Equal(t, "8.5", ratingToStorage(8.5))
	assert.Equal(t, "7.0", ratingToStorage(7))
	assert.Equal(t, "10.0", ratingToStorage(10))
}

func TestPatchAssignments(t *testing.T) {
	merged := model.SeriesFields{
		Title: "Dark", Rating: 9, TotalSeasons: 3, TotalEpisodes: 26, WatchedEpisodes: 26, Status: model.StatusCompleted,
	}

	as := patchAssignments(model.SeriesPatch{
		Title:           ptr("  Dark "),
		WatchedEpisodes: ptr(26),
	}, merged)

	set, args := setClause(as)
	assert.Equal(t, "title = ?, watched_episodes = ?", set)
	assert.Equal(t, []any{"Dark", 26}, args)

	assert.Empty(t, patchAssignments(model.SeriesPatch{}, merged))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
