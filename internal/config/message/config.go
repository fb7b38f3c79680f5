package message

import (
	"github.com/weisyn/vpnroom/internal/core/message/codec"
	"github.com/weisyn/vpnroom/pkg/types"
)

// MessageOptions 消息编解码配置选项
type MessageOptions struct {
	CompressionAlgorithm string `json:"compression_algorithm"` // 压缩算法：gzip | snappy
	CompressionLevel     int    `json:"compression_level"`     // gzip 压缩级别
	MaxDecodedBytes      int    `json:"max_decoded_bytes"`     // 解压后最大字节数（<=0 不限制）
	EnableMetrics        bool   `json:"enable_metrics"`        // 是否注册 Prometheus 指标
}

// Config 消息编解码配置实现
type Config struct {
	options *MessageOptions
}

// New 创建消息编解码配置实现
func New(userConfig interface{}) *Config {
	// 1. 先创建完整的默认配置
	options := createDefaultMessageOptions()

	// 2. 如果有用户配置，应用用户配置覆盖默认值
	if userConfig != nil {
		applyUserMessageConfig(options, userConfig)
	}

	return &Config{options: options}
}

// NewFromOptions 直接使用已有选项（nil 时回退到默认配置）
func NewFromOptions(options *MessageOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{options: options}
}

// createDefaultMessageOptions 创建默认消息编解码配置
func createDefaultMessageOptions() *MessageOptions {
	return &MessageOptions{
		CompressionAlgorithm: defaultCompressionAlgorithm,
		CompressionLevel:     defaultCompressionLevel,
		MaxDecodedBytes:      defaultMaxDecodedBytes,
		EnableMetrics:        defaultEnableMetrics,
	}
}

// applyUserMessageConfig 应用用户配置覆盖默认值
func applyUserMessageConfig(options *MessageOptions, userConfig interface{}) {
	cfg, ok := userConfig.(*types.UserMessageConfig)
	if !ok || cfg == nil {
		return
	}
	// 只处理JSON配置文件中实际出现的字段
	if cfg.CompressionAlgorithm != nil {
		options.CompressionAlgorithm = *cfg.CompressionAlgorithm
	}
	if cfg.CompressionLevel != nil {
		options.CompressionLevel = *cfg.CompressionLevel
	}
	if cfg.MaxDecodedBytes != nil {
		options.MaxDecodedBytes = *cfg.MaxDecodedBytes
	}
	if cfg.EnableMetrics != nil {
		options.EnableMetrics = *cfg.EnableMetrics
	}
}

// GetOptions 获取完整的配置选项
func (c *Config) GetOptions() *MessageOptions {
	return c.options
}

// GetCompressionAlgorithm 获取压缩算法
func (c *Config) GetCompressionAlgorithm() string {
	return c.options.CompressionAlgorithm
}

// GetCompressionLevel 获取压缩级别
func (c *Config) GetCompressionLevel() int {
	return c.options.CompressionLevel
}

// GetMaxDecodedBytes 获取解压后最大字节数
func (c *Config) GetMaxDecodedBytes() int {
	return c.options.MaxDecodedBytes
}

// IsMetricsEnabled 是否注册 Prometheus 指标
func (c *Config) IsMetricsEnabled() bool {
	return c.options.EnableMetrics
}

// CodecOptions 转换为编解码器选项
func (c *Config) CodecOptions() codec.Options {
	return codec.Options{
		Algorithm:       codec.Algorithm(c.options.CompressionAlgorithm),
		Level:           c.options.CompressionLevel,
		MaxDecodedBytes: c.options.MaxDecodedBytes,
	}
}
