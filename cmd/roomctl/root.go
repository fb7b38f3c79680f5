package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/weisyn/vpnroom/internal/app/version"
	"github.com/weisyn/vpnroom/internal/config"
	infralog "github.com/weisyn/vpnroom/internal/core/infrastructure/log"
	"github.com/weisyn/vpnroom/internal/core/message"
	"github.com/weisyn/vpnroom/internal/core/message/facade"
	iconfig "github.com/weisyn/vpnroom/pkg/interfaces/config"
	"github.com/weisyn/vpnroom/pkg/types"
)

// rootOptions 全局命令行参数
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "roomctl",
		Short:         "消息分级与负载编解码工具",
		Long:          "按内容判定消息优先级，并按传输层的规则压缩/还原消息负载",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "JSON 配置文件路径")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别（覆盖配置文件）："+types.LogLevelNames())

	root.AddCommand(
		newClassifyCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newSealCmd(opts),
		newOpenCmd(opts),
		newVersionCmd(),
	)
	return root
}

// withService 装配 config/log/message 模块，在回调中使用消息优化服务
func withService(ctx context.Context, opts *rootOptions, fn func(svc *facade.Service) error) error {
	appConfig, err := config.LoadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		if appConfig.Log == nil {
			appConfig.Log = &types.UserLogConfig{}
		}
		appConfig.Log.Level = types.StringPtr(opts.logLevel)
	}

	var svc *facade.Service
	app := fx.New(
		infralog.EventLogger(),
		fx.Provide(func() iconfig.AppOptions {
			return config.StaticAppOptions{Config: appConfig}
		}),
		config.Module(),
		infralog.Module(),
		message.Module(),
		fx.Populate(&svc),
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	return fn(svc)
}
