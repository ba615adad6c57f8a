// Package apperr 定义各层共用的错误分类
package apperr

import (
	"errors"
	"fmt"
)

// 错误分类。存储层与校验层返回（通常包装过的）这些错误，只有 HTTP 层负责映射成状态码
var (
	ErrInvalidField       = errors.New("invalid field")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrEmptyUpdate        = errors.New("empty update")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrConflict           = errors.New("conflict")
	ErrStorage            = errors.New("storage error")
	ErrRateLimited        = errors.New("rate limited")
)

// CodeUniqueViolation 唯一约束冲突的 SQLSTATE
const CodeUniqueViolation = "23505"

// FieldError 单个字段类型或取值范围不合法
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid field %q", e.Field)
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

// Field 构造 FieldError
func Field(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// StorageError 存储层错误，Code 为驱动返回的错误码（若有）
type StorageError struct {
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "storage error"
	}
	if e.Code != "" {
		return fmt.Sprintf("storage error (%s): %v", e.Code, e.Err)
	}
	return "storage error: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is 所有 StorageError 都匹配 ErrStorage，唯一约束冲突额外匹配 ErrConflict
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrStorage:
		return true
	case ErrConflict:
		return e.Code == CodeUniqueViolation
	}
	return false
}

// Storage 将 err 包装为 StorageError（已经是则原样返回）
func Storage(code string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Code: code, Err: err}
}

// Invariant 合并后的记录违反跨字段约束
func Invariant(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, msg)
}
