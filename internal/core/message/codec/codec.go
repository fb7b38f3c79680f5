// Package codec 提供消息负载的自适应压缩编解码
//
// 编码策略：
//   - 小于 CompressionThreshold 字节的消息不压缩（压缩的固定开销通常会让小负载变大）
//   - 达到阈值后尝试压缩，压缩结果严格更小才采用，否则保留原始字节
//   - 压缩过程出错视为"无收益"，回退到原始字节，编码本身永不失败
//
// 返回的压缩标志必须由调用方与字节一起传给接收方（例如放入信封字段）；
// 解码不做格式探测，完全依据该标志。
package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// CompressionThreshold 尝试压缩的最小字节数（1KB）
const CompressionThreshold = 1024

// Outcome 编码结果原因
type Outcome int

const (
	// OutcomeBelowThreshold 未达到阈值，未尝试压缩
	OutcomeBelowThreshold Outcome = iota
	// OutcomeCompressed 压缩后严格更小，已采用
	OutcomeCompressed
	// OutcomeNotSmaller 压缩后不更小，保留原始字节
	OutcomeNotSmaller
	// OutcomeCompressFailed 压缩过程出错，保留原始字节
	OutcomeCompressFailed
)

// String 返回结果名称（用于日志与指标标签）
func (o Outcome) String() string {
	switch o {
	case OutcomeBelowThreshold:
		return "below_threshold"
	case OutcomeCompressed:
		return "compressed"
	case OutcomeNotSmaller:
		return "not_smaller"
	case OutcomeCompressFailed:
		return "compress_failed"
	default:
		return "unknown"
	}
}

// Payload 编码结果
type Payload struct {
	Data       []byte
	Compressed bool
	Outcome    Outcome
	// OriginalSize 原始消息的 UTF-8 字节数
	OriginalSize int
}

// Options 编解码器选项
type Options struct {
	Algorithm Algorithm
	// Level gzip 压缩级别，非法值回退到 gzip.BestSpeed
	Level int
	// MaxDecodedBytes 解压后最大字节数，<= 0 表示不限制。
	// 不限制时 gzip 按实际数据增长分配；snappy 按头部声明的长度一次分配，
	// 但声明超过输入 22 倍的负载会被判为损坏，分配量不超过输入的 22 倍。
	MaxDecodedBytes int
}

// DefaultOptions 默认选项：gzip、速度优先、不限制解压大小
func DefaultOptions() Options {
	return Options{
		Algorithm: AlgorithmGzip,
		Level:     gzip.BestSpeed,
	}
}

// Codec 编解码器
//
// 除内部缓冲池外不持有可变状态，可被多个 goroutine 并发使用。
type Codec struct {
	opts Options
	comp compressor
}

// New 创建编解码器
func New(opts Options) (*Codec, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmGzip
	}
	comp, err := newCompressor(opts.Algorithm, opts.Level)
	if err != nil {
		return nil, err
	}
	if gc, ok := comp.(*gzipCompressor); ok {
		opts.Level = gc.level
	}
	return &Codec{opts: opts, comp: comp}, nil
}

// Options 返回生效的选项
func (c *Codec) Options() Options {
	return c.opts
}

// Encode 编码消息
func (c *Codec) Encode(message string) Payload {
	raw := []byte(message)
	p := Payload{Data: raw, OriginalSize: len(raw)}

	if len(raw) < CompressionThreshold {
		p.Outcome = OutcomeBelowThreshold
		return p
	}

	compressed, err := c.comp.compress(raw)
	switch {
	case err != nil:
		p.Outcome = OutcomeCompressFailed
	case len(compressed) < len(raw):
		p.Data = compressed
		p.Compressed = true
		p.Outcome = OutcomeCompressed
	default:
		p.Outcome = OutcomeNotSmaller
	}
	return p
}

// Decode 依据压缩标志还原消息
func (c *Codec) Decode(payload []byte, compressed bool) (string, error) {
	data := payload
	if compressed {
		out, err := c.comp.decompress(payload, c.opts.MaxDecodedBytes)
		if err != nil {
			return "", err
		}
		data = out
	}
	if !utf8.Valid(data) {
		return "", &DecodeError{
			Kind: ErrKindInvalidUTF8,
			Msg:  fmt.Sprintf("size=%d compressed=%t first_invalid_at=%d", len(data), compressed, firstInvalidUTF8(data)),
		}
	}
	return string(data), nil
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// std 包级编解码器：gzip、BestSpeed、不限制解压大小
var std = func() *Codec {
	c, err := New(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return c
}()

// Encode 使用默认编解码器编码消息，返回字节与压缩标志
func Encode(message string) ([]byte, bool) {
	p := std.Encode(message)
	return p.Data, p.Compressed
}

// Decode 使用默认编解码器解码
func Decode(payload []byte, compressed bool) (string, error) {
	return std.Decode(payload, compressed)
}
