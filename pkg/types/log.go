package types

import "strings"

// LogLevel 日志级别类型
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// LogLevels 全部支持的日志级别（从详细到严重）
//
// 配置校验、日志级别映射和命令行帮助都以此为准。
func LogLevels() []LogLevel {
	return []LogLevel{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel}
}

// Valid 是否为支持的日志级别（需已规范为小写）
func (l LogLevel) Valid() bool {
	for _, v := range LogLevels() {
		if l == v {
			return true
		}
	}
	return false
}

// LogLevelNames 以 ", " 连接的级别名称，用于提示信息
func LogLevelNames() string {
	names := make([]string, 0, len(LogLevels()))
	for _, l := range LogLevels() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
