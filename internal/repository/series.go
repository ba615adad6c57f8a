package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
	"github.com/user/seriestrack/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/user/seriestrack/internal/repository")

// SeriesRepository 剧集记录仓库，所有读写都按 owner 限定
type SeriesRepository struct {
	gw  Gateway
	now func() time.Time
}

func NewSeriesRepository(gw Gateway) *SeriesRepository {
	return &SeriesRepository{
		gw:  gw,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock 替换时间来源
func (r *SeriesRepository) WithClock(now func() time.Time) *SeriesRepository {
	r.now = now
	return r
}

// Create 校验并插入一条记录
func (r *SeriesRepository) Create(ctx context.Context, ownerID int64, in model.SeriesInput) (_ *model.Series, err error) {
	ctx, span := startSpan(ctx, "SeriesRepository.Create", ownerID, 0)
	defer func() { endSpan(span, err) }()

	if ownerID <= 0 {
		return nil, apperr.ErrUnauthenticated
	}
	fields, err := validation.ValidateCreateOrReplace(in)
	if err != nil {
		return nil, err
	}

	now := r.now()
	rows, err := r.gw.Query(ctx,
		"INSERT INTO series (user_id, title, rating, total_seasons, total_episodes, watched_episodes, status, created_at, updated_at) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING "+seriesColumns,
		ownerID, fields.Title, ratingToStorage(fields.Rating), fields.TotalSeasons,
		fields.TotalEpisodes, fields.WatchedEpisodes, string(fields.Status), now, now,
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.Storage("", fmt.Errorf("insert returned no row"))
	}
	return seriesFromRow(rows[0])
}

// ListByOwner 按条件列出某用户的记录，最新创建的在前
func (r *SeriesRepository) ListByOwner(ctx context.Context, ownerID int64, f model.SeriesFilter) (_ []*model.Series, err error) {
	ctx, span := startSpan(ctx, "SeriesRepository.ListByOwner", ownerID, 0)
	defer func() { endSpan(span, err) }()

	if ownerID <= 0 {
		return nil, apperr.ErrUnauthenticated
	}

	where := []string{"user_id = ?"}
	args := []any{ownerID}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.Rating != nil {
		where = append(where, "rating = ?")
		args = append(args, ratingToStorage(*f.Rating))
	}
	if f.Title != "" {
		where = append(where, `LOWER(title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(f.Title))+"%")
	}

	rows, err := r.gw.Query(ctx,
		"SELECT "+seriesColumns+" FROM series WHERE "+strings.Join(where, " AND ")+
			" ORDER BY created_at DESC, id DESC",
		args...,
	)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("series.count", len(rows)))
	return seriesFromRows(rows)
}

// GetByID 获取单条记录，不存在或不属于该用户都返回 ErrNotFound
func (r *SeriesRepository) GetByID(ctx context.Context, ownerID, id int64) (_ *model.Series, err error) {
	ctx, span := startSpan(ctx, "SeriesRepository.GetByID", ownerID, id)
	defer func() { endSpan(span, err) }()

	if ownerID <= 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if id <= 0 {
		return nil, apperr.ErrNotFound
	}
	return r.find(ctx, r.gw, ownerID, id, false)
}

// Replace 整体替换全部可变字段
func (r *SeriesRepository) Replace(ctx context.Context, ownerID, id int64, in model.SeriesInput) (_ *model.Series, err error) {
	ctx, span := startSpan(ctx, "SeriesRepository.Replace", ownerID, id)
	defer func() { endSpan(span, err) }()

	if ownerID <= 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if id <= 0 {
		return nil, apperr.ErrNotFound
	}
	fields, err := validation.ValidateCreateOrReplace(in)
	if err != nil {
		return nil, err
	}
	return r.update(ctx, r.gw, ownerID, id, fieldAssignments(fields))
}

// UpdatePartial 部分更新：同一事务内读取当前记录（PostgreSQL 下加行锁），
// 校验合并后的状态，再只写出现的列
func (r *SeriesRepository) UpdatePartial(ctx context.Context, ownerID, id int64, patch model.SeriesPatch) (_ *model.Series, err error) {
	ctx, span := startSpan(ctx, "SeriesRepository.UpdatePartial", ownerID, id)
	defer func() { endSpan(span, err) }()

	if ownerID <= 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if id <= 0 {
		return nil, apperr.ErrNotFound
	}

	var updated *model.Series
	err = r.gw.Transaction(ctx, func(tx Gateway) error {
		current, err := r.find(ctx, tx, ownerID, id, true)
		if err != nil {
			return err
		}
		merged, err := validation.ValidatePartial(patch, current.SeriesFields)
		if err != nil {
			return err
		}
		updated, err = r.update(ctx, tx, ownerID, id, patchAssignments(patch, merged))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove 删除记录，返回是否真的删除了一行
func (r *SeriesRepository) Remove(ctx context.Context, ownerID, id int64) (_ bool, err error) {
	ctx, span := startSpan(ctx, "SeriesRepository.Remove", ownerID, id)
	defer func() { endSpan(span, err) }()

	if ownerID <= 0 {
		return false, apperr.ErrUnauthenticated
	}
	if id <= 0 {
		return false, nil
	}
	n, err := r.gw.Exec(ctx, "DELETE FROM series WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SeriesRepository) find(ctx context.Context, gw Gateway, ownerID, id int64, lock bool) (*model.Series, error) {
	stmt := "SELECT " + seriesColumns + " FROM series WHERE id = ? AND user_id = ?"
	if lock && gw.Dialect() == "postgres" {
		stmt += " FOR UPDATE"
	}
	rows, err := gw.Query(ctx, stmt, id, ownerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	return seriesFromRow(rows[0])
}

func (r *SeriesRepository) update(ctx context.Context, gw Gateway, ownerID, id int64, as []assignment) (*model.Series, error) {
	set, args := setClause(append(as, assignment{"updated_at", r.now()}))
	args = append(args, id, ownerID)

	rows, err := gw.Query(ctx,
		"UPDATE series SET "+set+" WHERE id = ? AND user_id = ? RETURNING "+seriesColumns,
		args...,
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	return seriesFromRow(rows[0])
}

func startSpan(ctx context.Context, name string, ownerID, id int64) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(attribute.Int64("series.owner_id", ownerID))
	if id > 0 {
		span.SetAttributes(attribute.Int64("series.id", id))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
