package codec

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== 辅助函数 ====================

func randomText(t *testing.T, n int) string {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	// base64 文本的熵接近上限，压缩收益很小
	return base64.StdEncoding.EncodeToString(buf)[:n]
}

func gzipBytes(t *testing.T, src []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(src)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

type failingCompressor struct{}

func (failingCompressor) compress([]byte) ([]byte, error) {
	return nil, errors.New("sink closed")
}

func (failingCompressor) decompress([]byte, int) ([]byte, error) {
	return nil, &DecodeError{Kind: ErrKindMalformed, Msg: "unused"}
}

// ==================== 往返测试 ====================

// TestEncodeDecode_RoundTrip 测试各类输入的往返一致性
func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"ascii":         "hello, room",
		"multibyte":     "你好，世界 🌍 héllo",
		"500_bytes":     strings.Repeat("abcde", 100),
		"exactly_1024":  strings.Repeat("z", CompressionThreshold),
		"10000_bytes":   strings.Repeat("0123456789", 1000),
		"repetitive":    strings.Repeat(`{"type":"chat","msg":"hi"}`, 200),
		"unicode_large": strings.Repeat("你好世界", 900),
		"whitespace":    " \t\n" + strings.Repeat(" ", 3000) + "\r\n",
		"random_text":   randomText(t, 4000),
	}

	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			// Arrange & Act
			data, compressed := Encode(msg)
			got, err := Decode(data, compressed)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, msg, got)
		})
	}
}

// TestCodec_Snappy_RoundTrip 测试 snappy 算法往返
func TestCodec_Snappy_RoundTrip(t *testing.T) {
	c, err := New(Options{Algorithm: AlgorithmSnappy})
	require.NoError(t, err)

	for _, msg := range []string{"", "short", strings.Repeat("x", 2000), randomText(t, 3000)} {
		p := c.Encode(msg)
		got, err := c.Decode(p.Data, p.Compressed)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}

	p := c.Encode(strings.Repeat("x", 2000))
	assert.True(t, p.Compressed)
	assert.Less(t, len(p.Data), 2000)
}

// ==================== 阈值测试 ====================

// TestEncode_BelowThreshold_NeverCompresses 测试 1023 字节不压缩
func TestEncode_BelowThreshold_NeverCompresses(t *testing.T) {
	for _, msg := range []string{
		strings.Repeat("x", CompressionThreshold-1),
		strings.Repeat("é", 511) + "a", // 1023 字节的多字节文本
		"hello",
	} {
		data, compressed := Encode(msg)

		assert.False(t, compressed)
		assert.Equal(t, []byte(msg), data)
	}
}

// TestEncode_AtThreshold_CompressesRepetitive 测试达到阈值的重复内容一定压缩
func TestEncode_AtThreshold_CompressesRepetitive(t *testing.T) {
	for _, n := range []int{CompressionThreshold, CompressionThreshold + 1, 2000, 100000} {
		msg := strings.Repeat("x", n)

		data, compressed := Encode(msg)

		assert.True(t, compressed, "n=%d", n)
		assert.Less(t, len(data), len(msg), "n=%d", n)
	}
}

// TestEncode_ExampleScenario 测试 2000 个 x 的完整场景
func TestEncode_ExampleScenario(t *testing.T) {
	msg := strings.Repeat("x", 2000)

	data, compressed := Encode(msg)
	require.True(t, compressed)
	require.Less(t, len(data), 2000)

	got, err := Decode(data, compressed)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Len(t, got, 2000)
}

// TestEncode_Incompressible_FlagMatchesSize 测试高熵输入的标志与实际大小一致
func TestEncode_Incompressible_FlagMatchesSize(t *testing.T) {
	raw := make([]byte, 1500)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	// 随机字节按 Latin-1 渲染为文本（约 2000+ 字节的 UTF-8）
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}

	for _, msg := range []string{string(runes), randomText(t, 2000)} {
		p := std.Encode(msg)

		if p.Compressed {
			assert.Equal(t, OutcomeCompressed, p.Outcome)
			assert.Less(t, len(p.Data), len(msg))
		} else {
			assert.Equal(t, OutcomeNotSmaller, p.Outcome)
			assert.Equal(t, []byte(msg), p.Data)
		}
		assert.Equal(t, len(msg), p.OriginalSize)

		got, err := Decode(p.Data, p.Compressed)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}
}

// TestEncode_CompressFailure_FallsBackToRaw 测试压缩失败时回退原始字节
func TestEncode_CompressFailure_FallsBackToRaw(t *testing.T) {
	c := &Codec{opts: DefaultOptions(), comp: failingCompressor{}}
	msg := strings.Repeat("y", 4096)

	p := c.Encode(msg)

	assert.False(t, p.Compressed)
	assert.Equal(t, OutcomeCompressFailed, p.Outcome)
	assert.Equal(t, []byte(msg), p.Data)

	got, err := c.Decode(p.Data, p.Compressed)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

// TestEncode_Outcomes 测试各结果原因
func TestEncode_Outcomes(t *testing.T) {
	assert.Equal(t, OutcomeBelowThreshold, std.Encode("tiny").Outcome)
	assert.Equal(t, OutcomeCompressed, std.Encode(strings.Repeat("a", 5000)).Outcome)
	assert.Equal(t, "not_smaller", OutcomeNotSmaller.String())
	assert.Equal(t, "compress_failed", OutcomeCompressFailed.String())
}

// ==================== 解码错误测试 ====================

// TestDecode_TruncatedStream_ReturnsMalformed 测试截断的压缩流
func TestDecode_TruncatedStream_ReturnsMalformed(t *testing.T) {
	data, compressed := Encode(strings.Repeat("x", 2000))
	require.True(t, compressed)

	for _, cut := range []int{0, 5, len(data) / 2, len(data) - 1} {
		got, err := Decode(data[:cut], true)

		require.Error(t, err, "cut=%d", cut)
		assert.Empty(t, got)
		assert.ErrorIs(t, err, ErrMalformedPayload)
		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, ErrKindMalformed, kind)
	}
}

// TestDecode_CorruptedStream_ReturnsMalformed 测试损坏的压缩流
func TestDecode_CorruptedStream_ReturnsMalformed(t *testing.T) {
	data, compressed := Encode(strings.Repeat("hello world ", 300))
	require.True(t, compressed)

	badHeader := append([]byte(nil), data...)
	badHeader[0] ^= 0xFF
	_, err := Decode(badHeader, true)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	badTrailer := append([]byte(nil), data...)
	badTrailer[len(badTrailer)-5] ^= 0xFF // CRC32 字段
	_, err = Decode(badTrailer, true)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = Decode([]byte("definitely not gzip"), true)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.NotNil(t, de.Unwrap(), "应保留底层原因便于记录日志")
}

// TestDecode_RawInvalidUTF8_ReturnsError 测试未压缩的非法 UTF-8
func TestDecode_RawInvalidUTF8_ReturnsError(t *testing.T) {
	got, err := Decode([]byte{'o', 'k', 0xff, 0xfe}, false)

	require.Error(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.NotErrorIs(t, err, ErrMalformedPayload)
	assert.Contains(t, err.Error(), "first_invalid_at=2")
}

// TestDecode_CompressedInvalidUTF8_ReturnsError 测试解压后的非法 UTF-8
func TestDecode_CompressedInvalidUTF8_ReturnsError(t *testing.T) {
	payload := gzipBytes(t, bytes.Repeat([]byte{0xC3, 0x28}, 800))

	_, err := Decode(payload, true)

	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

// TestDecode_CompressedFlagMismatch 测试标志与数据不匹配时报错而非猜测
func TestDecode_CompressedFlagMismatch(t *testing.T) {
	_, err := Decode([]byte("plain text"), true)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

// TestDecode_Oversize 测试解压大小上限
func TestDecode_Oversize(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmGzip, AlgorithmSnappy} {
		t.Run(string(alg), func(t *testing.T) {
			c, err := New(Options{Algorithm: alg, MaxDecodedBytes: 1500})
			require.NoError(t, err)

			big := c.Encode(strings.Repeat("x", 2000))
			require.True(t, big.Compressed)
			_, err = c.Decode(big.Data, true)
			assert.ErrorIs(t, err, ErrPayloadTooLarge)

			fits := c.Encode(strings.Repeat("x", 1500))
			got, err := c.Decode(fits.Data, fits.Compressed)
			require.NoError(t, err)
			assert.Len(t, got, 1500)
		})
	}
}

// TestDecode_SnappyCorrupted 测试损坏的 snappy 数据
func TestDecode_SnappyCorrupted(t *testing.T) {
	c, err := New(Options{Algorithm: AlgorithmSnappy})
	require.NoError(t, err)

	p := c.Encode(strings.Repeat("abc", 1000))
	require.True(t, p.Compressed)

	_, err = c.Decode(p.Data[:len(p.Data)/2], true)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

// TestDecode_ConcatenatedMembers_ReturnsMalformed 测试多个 gzip 成员拼接
func TestDecode_ConcatenatedMembers_ReturnsMalformed(t *testing.T) {
	// Arrange
	data, compressed := Encode(strings.Repeat("x", 2000))
	require.True(t, compressed)
	doubled := append(append([]byte(nil), data...), data...)

	// Act
	got, err := Decode(doubled, true)

	// Assert
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = Decode(append(append([]byte(nil), data...), 0x00), true)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	// 拼接失败后池中的 reader 仍可正常复用
	msg, err := Decode(data, true)
	require.NoError(t, err)
	assert.Len(t, msg, 2000)
}

// TestDecode_SnappyInflatedHeader 测试头部声明长度超出膨胀上限
func TestDecode_SnappyInflatedHeader(t *testing.T) {
	c, err := New(Options{Algorithm: AlgorithmSnappy})
	require.NoError(t, err)

	// varint(1<<30) 后跟一个字面量指令
	claim := []byte{0x80, 0x80, 0x80, 0x80, 0x04, 0x00, 'x'}

	_, err = c.Decode(claim, true)

	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Contains(t, err.Error(), "claims")
}

// TestDecode_SnappyHighRatio 测试高压缩比的合法数据不被膨胀上限误伤
func TestDecode_SnappyHighRatio(t *testing.T) {
	c, err := New(Options{Algorithm: AlgorithmSnappy})
	require.NoError(t, err)

	for _, n := range []int{1024, 4096, 1 << 20} {
		msg := strings.Repeat("x", n)
		p := c.Encode(msg)
		require.True(t, p.Compressed)

		got, err := c.Decode(p.Data, true)

		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, msg, got)
	}
}

// ==================== 选项测试 ====================

// TestNew_Options 测试选项归一化
func TestNew_Options(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, AlgorithmGzip, c.Options().Algorithm)
	assert.Equal(t, gzip.BestSpeed, c.Options().Level)

	c, err = New(Options{Algorithm: AlgorithmGzip, Level: 42})
	require.NoError(t, err)
	assert.Equal(t, gzip.BestSpeed, c.Options().Level)

	c, err = New(Options{Algorithm: AlgorithmGzip, Level: gzip.BestCompression})
	require.NoError(t, err)
	assert.Equal(t, gzip.BestCompression, c.Options().Level)

	_, err = New(Options{Algorithm: "lz4"})
	assert.Error(t, err)
}

// ==================== 并发测试 ====================

// TestCodec_Concurrent 测试并发编解码（覆盖缓冲池复用）
func TestCodec_Concurrent(t *testing.T) {
	msgs := []string{
		"short",
		strings.Repeat("a", 3000),
		strings.Repeat("你好", 1000),
		strings.Repeat(`{"type":"entropy_commit","v":1}`, 100),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for _, msg := range msgs {
					data, compressed := Encode(msg)
					got, err := Decode(data, compressed)
					if !assert.NoError(t, err) || !assert.Equal(t, msg, got) {
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
