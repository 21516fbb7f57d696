package rcerrors

import (
	"errors"
	"fmt"
)

// Kind identifies the high level class of an error surfaced by runconfig.
type Kind string

const (
	// KindParse indicates the configuration text无法解析。
	KindParse Kind = "parse"
	// KindMissingKey indicates a requested section or key does not exist.
	KindMissingKey Kind = "missing_key"
	// KindUnresolvedReference 表示插值引用了不存在的键。
	KindUnresolvedReference Kind = "unresolved_reference"
	// KindCircularReference 表示插值引用形成了环。
	KindCircularReference Kind = "circular_reference"
	// KindCoercion indicates a resolved value could not be coerced to the
	// requested type.
	KindCoercion Kind = "type_coercion"
	// KindValidation 表示配置值未通过领域校验。
	KindValidation Kind = "validation"
	// KindInternal 表示未知或内部错误。
	KindInternal Kind = "internal"
)

// Error 包装底层错误并附加 Kind，方便调用方根据类型处理。
type Error struct {
	Kind Kind
	Err  error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap 允许 errors.Is/As 访问底层错误。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New 创建指定 Kind 的错误。
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// IsKind reports whether err (or any error it wraps) carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the Kind carried by err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
