// Package log 提供日志管理功能
package log

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	logconfig "github.com/weisyn/vpnroom/internal/config/log"
	"github.com/weisyn/vpnroom/pkg/interfaces/config"
	logInterface "github.com/weisyn/vpnroom/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger
	ZapLogger *zap.Logger // 供 fx 事件日志使用
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 按配置创建日志器，并在应用生命周期内将其设为全局日志器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.NewFromProvider(params.Provider))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	SetLogger(logger)
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stderr 等终端输出 Sync 可能返回 EINVAL，不影响退出
			_ = logger.Sync()
			SetLogger(nil)
			return nil
		},
	})

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// EventLogger 让 fx 的装配事件写入同一个 zap 日志器（debug 级别，失败事件为 error）
func EventLogger() fx.Option {
	return fx.WithLogger(func(zl *zap.Logger) fxevent.Logger {
		l := &fxevent.ZapLogger{Logger: zl.Named("fx")}
		l.UseLogLevel(zapcore.DebugLevel)
		return l
	})
}

// NewModuleLogger 创建带 module 字段的 logger
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.With("module", module)
}
