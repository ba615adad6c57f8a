package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
	"gorm.io/gorm"
)

type SeriesRepositorySuite struct {
	suite.Suite
	db    *gorm.DB
	repo  *SeriesRepository
	users *UserRepository
	owner int64
	other int64
	ctx   context.Context
}

func TestSeriesRepositorySuite(t *testing.T) {
	suite.Run(t, new(SeriesRepositorySuite))
}

func (s *SeriesRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.users = NewUserRepository(s.db)
	s.repo = NewSeriesRepository(NewGateway(s.db)).WithClock(newStepClock().Now)
	s.owner = createUser(s.T(), s.users, "owner@example.com").ID
	s.other = createUser(s.T(), s.users, "other@example.com").ID
}

func (s *SeriesRepositorySuite) create(owner int64, in model.SeriesInput) *model.Series {
	created, err := s.repo.Create(s.ctx, owner, in)
	s.Require().NoError(err)
	return created
}

func (s *SeriesRepositorySuite) TestCreate() {
	s.Run("persists normalized fields", func() {
		created := s.create(s.owner, seriesInput("  Dark ", 8.66, 3, 26, 10, model.StatusWatching))

		s.Positive(created.ID)
		s.Equal(s.owner, created.UserID)
		s.Equal("Dark", created.Title)
		s.Equal(8.7, created.Rating)
		s.Equal(3, created.TotalSeasons)
		s.Equal(26, created.TotalEpisodes)
		s.Equal(10, created.WatchedEpisodes)
		s.Equal(model.StatusWatching, created.Status)
		s.False(created.CreatedAt.IsZero())
		s.True(created.CreatedAt.Equal(created.UpdatedAt))

		got, err := s.repo.GetByID(s.ctx, s.owner, created.ID)
		s.Require().NoError(err)
		s.Equal(created.SeriesFields, got.SeriesFields)
		s.True(created.CreatedAt.Equal(got.CreatedAt))
	})

	s.Run("whole ratings round trip", func() {
		created := s.create(s.owner, seriesInput("Lost", 7, 6, 121, 0, model.StatusPlanned))
		got, err := s.repo.GetByID(s.ctx, s.owner, created.ID)
		s.Require().NoError(err)
		s.Equal(7.0, got.Rating)
	})

	s.Run("field errors write nothing", func() {
		before, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{})
		s.Require().NoError(err)

		_, err = s.repo.Create(s.ctx, s.owner, seriesInput("Bad", 11, 1, 10, 0, model.StatusPlanned))
		s.ErrorIs(err, apperr.ErrInvalidField)

		_, err = s.repo.Create(s.ctx, s.owner, seriesInput("Bad", 5, 1, 10, 11, model.StatusPlanned))
		s.ErrorIs(err, apperr.ErrInvariantViolation)

		in := seriesInput("Bad", 5, 1, 10, 1, model.StatusPlanned)
		in.Status = nil
		_, err = s.repo.Create(s.ctx, s.owner, in)
		s.ErrorIs(err, apperr.ErrInvalidField)

		after, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{})
		s.Require().NoError(err)
		s.Len(after, len(before))
	})

	s.Run("requires an owner", func() {
		_, err := s.repo.Create(s.ctx, 0, seriesInput("Dark", 9, 3, 26, 0, model.StatusPlanned))
		s.ErrorIs(err, apperr.ErrUnauthenticated)
	})
}

func (s *SeriesRepositorySuite) TestListByOwner() {
	foo := s.create(s.owner, seriesInput("Foo", 8.5, 1, 10, 10, model.StatusCompleted))
	bar := s.create(s.owner, seriesInput("Bar 100%", 6, 2, 20, 5, model.StatusWatching))
	baz := s.create(s.owner, seriesInput("baz_1", 8.5, 1, 8, 0, model.StatusPlanned))
	s.create(s.other, seriesInput("Foo", 8.5, 1, 10, 10, model.StatusCompleted))

	ids := func(list []*model.Series) []int64 {
		out := make([]int64, 0, len(list))
		for _, item := range list {
			out = append(out, item.ID)
		}
		return out
	}

	s.Run("no filter returns all owner records newest first", func() {
		list, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{})
		s.Require().NoError(err)
		s.Equal([]int64{baz.ID, bar.ID, foo.ID}, ids(list))
	})

	s.Run("status filter", func() {
		list, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Status: ptr(model.StatusWatching)})
		s.Require().NoError(err)
		s.Equal([]int64{bar.ID}, ids(list))
	})

	s.Run("rating filter", func() {
		list, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Rating: ptr(8.5)})
		s.Require().NoError(err)
		s.Equal([]int64{baz.ID, foo.ID}, ids(list))

		list, err = s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Rating: ptr(6.0)})
		s.Require().NoError(err)
		s.Equal([]int64{bar.ID}, ids(list))
	})

	s.Run("title filter is a case-insensitive substring", func() {
		list, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Title: "oo"})
		s.Require().NoError(err)
		s.Equal([]int64{foo.ID}, ids(list))

		list, err = s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Title: "BA"})
		s.Require().NoError(err)
		s.Equal([]int64{baz.ID, bar.ID}, ids(list))
	})

	s.Run("wildcards in title are literal", func() {
		list, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Title: "%"})
		s.Require().NoError(err)
		s.Equal([]int64{bar.ID}, ids(list))

		list, err = s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{Title: "_"})
		s.Require().NoError(err)
		s.Equal([]int64{baz.ID}, ids(list))
	})

	s.Run("filters combine", func() {
		list, err := s.repo.ListByOwner(s.ctx, s.owner, model.SeriesFilter{
			Status: ptr(model.StatusCompleted),
			Rating: ptr(8.5),
			Title:  "f",
		})
		s.Require().NoError(err)
		s.Equal([]int64{foo.ID}, ids(list))
	})

	s.Run("owner without records sees an empty list", func() {
		stranger := createUser(s.T(), s.users, "stranger@example.com")
		list, err := s.repo.ListByOwner(s.ctx, stranger.ID, model.SeriesFilter{})
		s.Require().NoError(err)
		s.Empty(list)
	})
}

func (s *SeriesRepositorySuite) TestOwnershipIsolation() {
	mine := s.create(s.owner, seriesInput("Dark", 9, 3, 26, 10, model.StatusWatching))

	_, err := s.repo.GetByID(s.ctx, s.other, mine.ID)
	s.ErrorIs(err, apperr.ErrNotFound)

	_, err = s.repo.Replace(s.ctx, s.other, mine.ID, seriesInput("Hacked", 1, 1, 1, 1, model.StatusCompleted))
	s.ErrorIs(err, apperr.ErrNotFound)

	_, err = s.repo.UpdatePartial(s.ctx, s.other, mine.ID, model.SeriesPatch{Title: ptr("Hacked")})
	s.ErrorIs(err, apperr.ErrNotFound)

	removed, err := s.repo.Remove(s.ctx, s.other, mine.ID)
	s.Require().NoError(err)
	s.False(removed)

	got, err := s.repo.GetByID(s.ctx, s.owner, mine.ID)
	s.Require().NoError(err)
	s.Equal(mine.SeriesFields, got.SeriesFields)
}

func (s *SeriesRepositorySuite) TestGetByID_Missing() {
	_, err := s.repo.GetByID(s.ctx, s.owner, 9999)
	s.ErrorIs(err, apperr.ErrNotFound)

	_, err = s.repo.GetByID(s.ctx, s.owner, 0)
	s.ErrorIs(err, apperr.ErrNotFound)

	_, err = s.repo.GetByID(s.ctx, -1, 1)
	s.ErrorIs(err, apperr.ErrUnauthenticated)
}

func (s *SeriesRepositorySuite) TestReplace() {
	created := s.create(s.owner, seriesInput("Dark", 9, 3, 26, 10, model.StatusWatching))

	s.Run("overwrites every mutable field", func() {
		replaced, err := s.repo.Replace(s.ctx, s.owner, created.ID, seriesInput("Dark (2017)", 9.5, 3, 26, 26, model.StatusCompleted))
		s.Require().NoError(err)

		s.Equal(created.ID, replaced.ID)
		s.Equal(s.owner, replaced.UserID)
		s.Equal(model.SeriesFields{
			Title:           "Dark (2017)",
			Rating:          9.5,
			TotalSeasons:    3,
			TotalEpisodes:   26,
			WatchedEpisodes: 26,
			Status:          model.StatusCompleted,
		}, replaced.SeriesFields)
		s.True(replaced.CreatedAt.Equal(created.CreatedAt))
		s.True(replaced.UpdatedAt.After(created.UpdatedAt))
	})

	s.Run("invalid payload leaves the record untouched", func() {
		before, err := s.repo.GetByID(s.ctx, s.owner, created.ID)
		s.Require().NoError(err)

		_, err = s.repo.Replace(s.ctx, s.owner, created.ID, seriesInput("Dark", 9, 3, 5, 6, model.StatusWatching))
		s.ErrorIs(err, apperr.ErrInvariantViolation)

		after, err := s.repo.GetByID(s.ctx, s.owner, created.ID)
		s.Require().NoError(err)
		s.Equal(before.SeriesFields, after.SeriesFields)
		s.True(before.UpdatedAt.Equal(after.UpdatedAt))
	})

	s.Run("missing record", func() {
		_, err := s.repo.Replace(s.ctx, s.owner, 9999, seriesInput("Dark", 9, 3, 26, 10, model.StatusWatching))
		s.ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *SeriesRepositorySuite) TestUpdatePartial() {
	s.Run("writes only present fields", func() {
		created := s.create(s.owner, seriesInput("Dark", 9, 3, 26, 10, model.StatusWatching))

		updated, err := s.repo.UpdatePartial(s.ctx, s.owner, created.ID, model.SeriesPatch{
			WatchedEpisodes: ptr(26),
			Status:          ptr(model.StatusCompleted),
		})
		s.Require().NoError(err)

		want := created.SeriesFields
		want.WatchedEpisodes = 26
		want.Status = model.StatusCompleted
		s.Equal(want, updated.SeriesFields)
		s.True(updated.CreatedAt.Equal(created.CreatedAt))
		s.True(updated.UpdatedAt.After(created.UpdatedAt))
	})

	s.Run("invariant is checked on the merged state", func() {
		created := s.create(s.owner, seriesInput("X", 7, 1, 20, 20, model.StatusCompleted))

		_, err := s.repo.UpdatePartial(s.ctx, s.owner, created.ID, model.SeriesPatch{TotalEpisodes: ptr(15)})
		s.ErrorIs(err, apperr.ErrInvariantViolation)

		got, err := s.repo.GetByID(s.ctx, s.owner, created.ID)
		s.Require().NoError(err)
		s.Equal(20, got.TotalEpisodes)
		s.Equal(20, got.WatchedEpisodes)
	})

	s.Run("field errors", func() {
		created := s.create(s.owner, seriesInput("Y", 7, 1, 20, 0, model.StatusPlanned))

		_, err := s.repo.UpdatePartial(s.ctx, s.owner, created.ID, model.SeriesPatch{Rating: ptr(-2.0)})
		s.ErrorIs(err, apperr.ErrInvalidField)

		_, err = s.repo.UpdatePartial(s.ctx, s.owner, created.ID, model.SeriesPatch{Title: ptr(" ")})
		s.ErrorIs(err, apperr.ErrInvalidField)
	})

	s.Run("empty patch is rejected", func() {
		created := s.create(s.owner, seriesInput("Z", 7, 1, 20, 0, model.StatusPlanned))

		_, err := s.repo.UpdatePartial(s.ctx, s.owner, created.ID, model.SeriesPatch{})
		s.ErrorIs(err, apperr.ErrEmptyUpdate)
	})

	s.Run("missing record wins over empty patch", func() {
		_, err := s.repo.UpdatePartial(s.ctx, s.owner, 9999, model.SeriesPatch{})
		s.ErrorIs(err, apperr.ErrNotFound)
	})
}

func (s *SeriesRepositorySuite) TestRemove() {
	created := s.create(s.owner, seriesInput("Dark", 9, 3, 26, 10, model.StatusWatching))

	removed, err := s.repo.Remove(s.ctx, s.owner, created.ID)
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.repo.Remove(s.ctx, s.owner, created.ID)
	s.Require().NoError(err)
	s.False(removed)

	_, err = s.repo.GetByID(s.ctx, s.owner, created.ID)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *SeriesRepositorySuite) TestDeletingUserCascades() {
	created := s.create(s.other, seriesInput("Dark", 9, 3, 26, 10, model.StatusWatching))

	s.Require().NoError(s.users.Delete(s.ctx, s.other))

	_, err := s.repo.GetByID(s.ctx, s.other, created.ID)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *SeriesRepositorySuite) TestCheckConstraintsBackstopValidation() {
	_, err := NewGateway(s.db).Exec(s.ctx,
		"INSERT INTO series (user_id, title, rating, total_seasons, total_episodes, watched_episodes, status, created_at, updated_at) "+
			"VALUES (?, 'raw', '5.0', 1, 5, 6, 'planned', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		s.owner,
	)
	s.ErrorIs(err, apperr.ErrStorage)
}
