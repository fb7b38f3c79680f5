package log

import "github.com/weisyn/vpnroom/pkg/types"

// 日志配置默认值
const (
	// defaultLogLevel info 记录启动与异常；编码回退等细节在 debug 输出
	defaultLogLevel = types.InfoLevel

	// defaultFilePath roomctl 的标准输出用于打印结果，日志默认写 stderr
	defaultFilePath = consoleStderr

	defaultToConsole = true

	// 文件输出时的轮转参数
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
	defaultCompress   = true

	defaultEnableCaller     = true
	defaultEnableStacktrace = true
)

// 表示控制台而非文件的输出路径
const (
	consoleStdout = "stdout"
	consoleStderr = "stderr"
)
