package codec

import (
	"errors"
	"fmt"
)

// 解码哨兵错误，供上层通过 errors.Is 分类
var (
	// ErrMalformedPayload 压缩流损坏或被截断
	ErrMalformedPayload = errors.New("malformed compressed payload")
	// ErrInvalidUTF8 解码结果不是合法的 UTF-8 文本
	ErrInvalidUTF8 = errors.New("payload is not valid utf-8")
	// ErrPayloadTooLarge 解压后超过 MaxDecodedBytes
	ErrPayloadTooLarge = errors.New("decoded payload too large")
)

// ErrKind 解码错误类型
type ErrKind int

const (
	// ErrKindMalformed 压缩流无法还原，不可重试（应丢弃或请求重传）
	ErrKindMalformed ErrKind = iota
	// ErrKindInvalidUTF8 字节不是合法 UTF-8
	ErrKindInvalidUTF8
	// ErrKindOversize 解压结果超限（防压缩炸弹）
	ErrKindOversize
)

// String 返回错误类型名称（用于日志与指标标签）
func (k ErrKind) String() string {
	switch k {
	case ErrKindMalformed:
		return "malformed"
	case ErrKindInvalidUTF8:
		return "invalid_utf8"
	case ErrKindOversize:
		return "oversize"
	default:
		return "unknown"
	}
}

// DecodeError 分类解码错误
type DecodeError struct {
	Kind  ErrKind
	Msg   string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("decode %s: %s", e.Kind, e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Is 将错误类型映射到哨兵错误
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformedPayload:
		return e.Kind == ErrKindMalformed
	case ErrInvalidUTF8:
		return e.Kind == ErrKindInvalidUTF8
	case ErrPayloadTooLarge:
		return e.Kind == ErrKindOversize
	}
	return false
}

// KindOf 提取错误类型；非 DecodeError 返回 false
func KindOf(err error) (ErrKind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
