package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
)

// Algorithm 压缩算法
//
// 标志位只说明"是否压缩"，不说明用的哪种算法：收发双方必须配置相同的算法。
type Algorithm string

const (
	// AlgorithmGzip deflate 族，默认算法
	AlgorithmGzip Algorithm = "gzip"
	// AlgorithmSnappy 更快但压缩率更低
	AlgorithmSnappy Algorithm = "snappy"
)

// compressor 压缩策略
type compressor interface {
	compress(src []byte) ([]byte, error)
	// decompress 还原数据；maxBytes <= 0 表示不限制
	decompress(src []byte, maxBytes int) ([]byte, error)
}

func newCompressor(alg Algorithm, level int) (compressor, error) {
	switch alg {
	case AlgorithmGzip, "":
		return newGzipCompressor(level), nil
	case AlgorithmSnappy:
		return snappyCompressor{}, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", alg)
	}
}

// ==================== gzip ====================

type gzipCompressor struct {
	level   int
	writers sync.Pool
	readers sync.Pool
}

func newGzipCompressor(level int) *gzipCompressor {
	return &gzipCompressor{level: normalizeGzipLevel(level)}
}

// normalizeGzipLevel 非法级别回退到 BestSpeed（编码速度优先）
func normalizeGzipLevel(level int) int {
	if level == gzip.DefaultCompression {
		return level
	}
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		return gzip.BestSpeed
	}
	return level
}

func (c *gzipCompressor) compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(src) / 2)

	zw, _ := c.writers.Get().(*gzip.Writer)
	if zw == nil {
		var err error
		zw, err = gzip.NewWriterLevel(&buf, c.level)
		if err != nil {
			return nil, err
		}
	} else {
		zw.Reset(&buf)
	}
	defer c.writers.Put(zw)

	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("gzip write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *gzipCompressor) decompress(src []byte, maxBytes int) ([]byte, error) {
	br := bytes.NewReader(src)

	zr, _ := c.readers.Get().(*gzip.Reader)
	if zr == nil {
		var err error
		zr, err = gzip.NewReader(br)
		if err != nil {
			return nil, &DecodeError{Kind: ErrKindMalformed, Msg: "gzip header", Cause: err}
		}
	} else if err := zr.Reset(br); err != nil {
		c.readers.Put(zr)
		return nil, &DecodeError{Kind: ErrKindMalformed, Msg: "gzip header", Cause: err}
	}
	defer func() {
		_ = zr.Close()
		c.readers.Put(zr)
	}()
	// 编码端只产生单个 gzip 成员；Reset 会重新开启多成员模式
	zr.Multistream(false)

	var r io.Reader = zr
	if maxBytes > 0 {
		// 最多读取 maxBytes+1，用于判断是否超限
		r = io.LimitReader(zr, int64(maxBytes)+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Kind: ErrKindMalformed, Msg: fmt.Sprintf("gzip stream (size=%d)", len(src)), Cause: err}
	}
	if maxBytes > 0 && len(out) > maxBytes {
		return nil, &DecodeError{Kind: ErrKindOversize, Msg: fmt.Sprintf("%d > %d bytes", len(out), maxBytes)}
	}
	if br.Len() > 0 {
		return nil, &DecodeError{Kind: ErrKindMalformed, Msg: fmt.Sprintf("%d trailing bytes after gzip member", br.Len())}
	}
	return out, nil
}

// ==================== snappy ====================

type snappyCompressor struct{}

// snappyMaxExpansion 单个 snappy 块的解压膨胀上限：最长的复制指令 3 字节产出 64 字节
const snappyMaxExpansion = 22

func (snappyCompressor) compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (snappyCompressor) decompress(src []byte, maxBytes int) ([]byte, error) {
	// snappy 提供解压后长度预测，可提前拒绝
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, &DecodeError{Kind: ErrKindMalformed, Msg: "snappy header", Cause: err}
	}
	if maxBytes > 0 && n > maxBytes {
		return nil, &DecodeError{Kind: ErrKindOversize, Msg: fmt.Sprintf("%d > %d bytes", n, maxBytes)}
	}
	// 头部声明的长度先于校验用于分配缓冲区，超出膨胀上限的声明不可能合法
	if n/snappyMaxExpansion > len(src) {
		return nil, &DecodeError{Kind: ErrKindMalformed, Msg: fmt.Sprintf("snappy header claims %d bytes from %d", n, len(src))}
	}
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, &DecodeError{Kind: ErrKindMalformed, Msg: fmt.Sprintf("snappy block (size=%d)", len(src)), Cause: err}
	}
	return out, nil
}
