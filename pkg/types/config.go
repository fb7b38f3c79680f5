package types

// AppConfig 应用配置（对应 JSON 配置文件顶层结构）
// 所有字段均为指针：nil 表示配置文件中未出现，由各模块使用默认值
type AppConfig struct {
	Log     *UserLogConfig     `json:"log,omitempty"`     // 日志配置
	Message *UserMessageConfig `json:"message,omitempty"` // 消息编解码配置
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty"` // 是否输出到控制台
}

// UserMessageConfig 用户消息编解码配置
type UserMessageConfig struct {
	CompressionAlgorithm *string `json:"compression_algorithm,omitempty"` // gzip | snappy
	CompressionLevel     *int    `json:"compression_level,omitempty"`     // gzip 压缩级别
	MaxDecodedBytes      *int    `json:"max_decoded_bytes,omitempty"`     // 解压后最大字节数（0 表示不限制）
	EnableMetrics        *bool   `json:"enable_metrics,omitempty"`        // 是否注册 Prometheus 指标
}
