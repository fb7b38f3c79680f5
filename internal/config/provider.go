package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/weisyn/vpnroom/internal/config/log"
	"github.com/weisyn/vpnroom/internal/config/message"
	"github.com/weisyn/vpnroom/pkg/interfaces/config"
	"github.com/weisyn/vpnroom/pkg/types"
)

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}

	// log.New会处理默认值应用和用户配置覆盖
	return log.New(userLogConfig).GetOptions()
}

// GetMessage 获取消息编解码配置
func (p *Provider) GetMessage() *message.MessageOptions {
	var userMessageConfig *types.UserMessageConfig
	if p.appConfig != nil && p.appConfig.Message != nil {
		userMessageConfig = p.appConfig.Message
	}
	return message.New(userMessageConfig).GetOptions()
}

// LoadAppConfig 从 JSON 配置文件加载应用配置
// path 为空时返回空配置（全部使用默认值）
func LoadAppConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", path, err)
	}
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}
	return &appConfig, nil
}

// StaticAppOptions 以固定的应用配置实现 config.AppOptions
type StaticAppOptions struct {
	Config *types.AppConfig
}

// GetAppConfig 获取应用配置
func (o StaticAppOptions) GetAppConfig() *types.AppConfig {
	return o.Config
}
