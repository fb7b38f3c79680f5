// Package message 提供消息优化层的 Fx 模块绑定
//
// 📨 **消息优化层 (Message Optimization Layer)**
//
// 本模块负责出站消息的分级与负载压缩：
// - priority/：按内容判定四级优先级（纯函数）
// - codec/：超过阈值时自适应压缩，标志位可信、解码精确还原（纯函数）
// - facade/：在纯函数之上附加日志、指标与信封封装
//
// 传输层通过 pkg/interfaces/message.Optimizer 使用本模块，不感知内部实现。
package message

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	messageconfig "github.com/weisyn/vpnroom/internal/config/message"
	infralog "github.com/weisyn/vpnroom/internal/core/infrastructure/log"
	"github.com/weisyn/vpnroom/internal/core/message/facade"
	logiface "github.com/weisyn/vpnroom/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/vpnroom/pkg/interfaces/message"
)

// ModuleInput 定义 message 模块的输入依赖
type ModuleInput struct {
	fx.In

	// ========== 配置依赖 ==========
	Config *messageconfig.Config `optional:"true"` // 消息编解码配置

	// ========== 基础设施依赖 ==========
	Logger     logiface.Logger       `optional:"true"` // 日志记录器
	Registerer prometheus.Registerer `optional:"true"` // 指标注册表（缺省为默认注册表）
}

// ModuleOutput message 模块输出
type ModuleOutput struct {
	fx.Out

	Optimizer iface.Optimizer `name:"message_optimizer"` // 消息优化门面
	Service   *facade.Service // 具体实现（供 CLI 获取编码结果原因）
}

// Module 返回消息优化模块
func Module() fx.Option {
	return fx.Module("message",
		fx.Provide(ProvideServices),

		fx.Invoke(
			fx.Annotate(
				func(lc fx.Lifecycle, logger logiface.Logger) {
					if logger == nil {
						logger = infralog.GetLogger()
					}
					logger = infralog.NewModuleLogger(logger, "message")
					lc.Append(fx.Hook{
						OnStart: func(ctx context.Context) error {
							logger.Debug("📨 消息优化模块启动")
							return nil
						},
						OnStop: func(ctx context.Context) error {
							logger.Debug("📨 消息优化模块停止")
							_ = logger.Sync()
							return nil
						},
					})
				},
				fx.ParamTags(``, `optional:"true"`),
			),
		),
	)
}

// ProvideServices 提供消息优化服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	logger := input.Logger
	if logger != nil {
		// 为消息模块添加 module 字段
		logger = infralog.NewModuleLogger(logger, "message")
	}

	svc, err := facade.New(input.Config, logger, input.Registerer)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建消息优化服务失败: %w", err)
	}

	return ModuleOutput{
		Optimizer: svc,
		Service:   svc,
	}, nil
}
