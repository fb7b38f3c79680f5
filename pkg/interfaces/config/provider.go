// Package config provides configuration provider interfaces.
package config

import (
	logconfig "github.com/weisyn/vpnroom/internal/config/log"
	messageconfig "github.com/weisyn/vpnroom/internal/config/message"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetMessage 获取消息编解码配置
	GetMessage() *messageconfig.MessageOptions
}
