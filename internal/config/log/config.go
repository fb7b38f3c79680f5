package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/weisyn/vpnroom/pkg/types"
)

// RotationOptions 日志文件轮转参数
type RotationOptions struct {
	MaxSizeMB  int  `json:"max_size"`    // 单个文件最大大小(MB)
	MaxBackups int  `json:"max_backups"` // 最多保留的历史文件数
	MaxAgeDays int  `json:"max_age"`     // 历史文件最大保留天数
	Compress   bool `json:"compress"`    // 是否压缩历史文件
}

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug, info, warn, error, fatal
	ToConsole bool   `json:"to_console"` // 写文件时是否同时输出到控制台
	FilePath  string `json:"file_path"`  // 文件路径；stdout / stderr 表示控制台

	Rotation RotationOptions `json:"rotation"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"` // error 及以上附带堆栈
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 以默认值为基础，应用 *types.UserLogConfig 中出现的字段
func New(userConfig interface{}) *Config {
	options := &LogOptions{
		Level:     string(defaultLogLevel),
		ToConsole: defaultToConsole,
		FilePath:  defaultFilePath,
		Rotation: RotationOptions{
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
			Compress:   defaultCompress,
		},
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
	}

	if cfg, ok := userConfig.(*types.UserLogConfig); ok && cfg != nil {
		if cfg.Level != nil {
			options.Level = strings.ToLower(strings.TrimSpace(*cfg.Level))
		}
		if cfg.FilePath != nil {
			options.FilePath = *cfg.FilePath
			options.ToConsole = false // 指定文件后默认只写文件
		}
		if cfg.ToConsole != nil {
			options.ToConsole = *cfg.ToConsole
		}
	}

	return &Config{options: options}
}

// NewFromProvider 使用配置提供者已解析的选项，取不到时回退到默认配置
func NewFromProvider(provider interface{}) *Config {
	if p, ok := provider.(interface{ GetLog() *LogOptions }); ok {
		if opts := p.GetLog(); opts != nil {
			return &Config{options: opts}
		}
	}
	return New(nil)
}

// GetOptions 获取完整的配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetLevel 获取日志级别名称
func (c *Config) GetLevel() string {
	return c.options.Level
}

// ZapLevel 转换为 zap 级别；未知级别按 info 处理
func (c *Config) ZapLevel() zapcore.Level {
	switch types.LogLevel(c.options.Level) {
	case types.DebugLevel:
		return zapcore.DebugLevel
	case types.WarnLevel:
		return zapcore.WarnLevel
	case types.ErrorLevel:
		return zapcore.ErrorLevel
	case types.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ConsoleOutput 返回控制台输出目标；不输出到控制台时 ok 为 false
func (c *Config) ConsoleOutput() (ws zapcore.WriteSyncer, ok bool) {
	switch c.options.FilePath {
	case consoleStdout:
		return zapcore.AddSync(os.Stdout), true
	case consoleStderr, "":
		return zapcore.AddSync(os.Stderr), true
	}
	if c.options.ToConsole {
		return zapcore.AddSync(os.Stderr), true
	}
	return nil, false
}

// FileOutput 返回日志文件路径；路径为控制台关键字时 ok 为 false
func (c *Config) FileOutput() (path string, ok bool) {
	switch c.options.FilePath {
	case consoleStdout, consoleStderr, "":
		return "", false
	}
	return c.options.FilePath, true
}

// Rotation 文件轮转参数
func (c *Config) Rotation() RotationOptions {
	return c.options.Rotation
}

// ZapOptions 调用者与堆栈选项
func (c *Config) ZapOptions() []zap.Option {
	var opts []zap.Option
	if c.options.EnableCaller {
		// 跳过 Logger 封装这一层，定位到业务调用处
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if c.options.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return opts
}

// FileEncoder 文件使用 JSON 编码，便于采集
func (c *Config) FileEncoder() zapcore.Encoder {
	ec := encoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

// ConsoleEncoder 控制台使用可读格式
func (c *Config) ConsoleEncoder() zapcore.Encoder {
	ec := encoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
