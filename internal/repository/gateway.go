package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/user/seriestrack/internal/apperr"
	"gorm.io/gorm"
)

// Row 一行查询结果，列名 -> 值
type Row = map[string]any

// Gateway 执行参数化 SQL 的最小接口，占位符统一用 ?
type Gateway interface {
	Query(ctx context.Context, stmt string, args ...any) ([]Row, error)
	Exec(ctx context.Context, stmt string, args ...any) (int64, error)
	// Transaction 在同一事务内执行 fn，fn 返回错误则回滚
	Transaction(ctx context.Context, fn func(tx Gateway) error) error
	// Dialect 返回底层数据库方言，如 postgres / sqlite
	Dialect() string
}

type gormGateway struct {
	db *gorm.DB
}

// NewGateway 基于 gorm 连接创建 Gateway
func NewGateway(db *gorm.DB) Gateway {
	return &gormGateway{db: db}
}

func (g *gormGateway) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := g.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, g.classify(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, g.classify(err)
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, g.classify(err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			// lib/pq 对 numeric / text 返回 []byte
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, g.classify(err)
	}
	return out, nil
}

func (g *gormGateway) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	res := g.db.WithContext(ctx).Exec(stmt, args...)
	if res.Error != nil {
		return 0, g.classify(res.Error)
	}
	return res.RowsAffected, nil
}

func (g *gormGateway) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	var fnErr error
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&gormGateway{db: tx})
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin / commit 失败
		return g.classify(err)
	}
	return err
}

func (g *gormGateway) Dialect() string {
	return g.db.Dialector.Name()
}

func (g *gormGateway) classify(err error) error {
	return classifyError(g.db, err)
}

// classifyError 把驱动错误统一包装成 apperr.StorageError，唯一约束冲突带上 23505
func classifyError(db *gorm.DB, err error) error {
	if err == nil {
		return nil
	}
	if t, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		if translated := t.Translate(err); translated != nil {
			if errors.Is(translated, gorm.ErrDuplicatedKey) || errors.Is(translated, gorm.ErrForeignKeyViolated) {
				err = errors.Join(translated, err)
			}
		}
	}

	var pqErr *pq.Error
	switch {
	case errors.As(err, &pqErr):
		return apperr.Storage(string(pqErr.Code), err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Storage(apperr.CodeUniqueViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Storage(codeForeignKeyViolation, err)
	default:
		return apperr.Storage("", err)
	}
}

const codeForeignKeyViolation = "23503"
