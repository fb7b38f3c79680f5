package message

import "github.com/klauspost/compress/gzip"

// 消息编解码配置默认值
const (
	// defaultCompressionAlgorithm 默认压缩算法设为 gzip
	// 原因：deflate 族算法在文本消息上收益稳定，且收发双方无需额外协商
	defaultCompressionAlgorithm = "gzip"

	// defaultCompressionLevel 默认压缩级别设为 BestSpeed
	// 原因：消息在发送路径上同步编码，编码延迟比压缩率更重要
	defaultCompressionLevel = gzip.BestSpeed

	// defaultMaxDecodedBytes 默认解压后最大 8MB
	// 原因：与网络层最大消息大小同量级，防止压缩炸弹
	defaultMaxDecodedBytes = 8 * 1024 * 1024

	// defaultEnableMetrics 默认注册 Prometheus 指标
	defaultEnableMetrics = true
)
