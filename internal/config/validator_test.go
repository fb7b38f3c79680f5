package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	iconfig "github.com/weisyn/vpnroom/pkg/interfaces/config"
	"github.com/weisyn/vpnroom/pkg/types"
)

// TestValidateAppConfig_Valid 测试合法配置
func TestValidateAppConfig_Valid(t *testing.T) {
	assert.NoError(t, ValidateAppConfig(nil))
	assert.NoError(t, ValidateAppConfig(&types.AppConfig{}))
	assert.NoError(t, ValidateAppConfig(&types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr("WARN")},
		Message: &types.UserMessageConfig{
			CompressionAlgorithm: types.StringPtr("snappy"),
			CompressionLevel:     types.IntPtr(-1),
			MaxDecodedBytes:      types.IntPtr(0),
		},
	}))
}

// TestValidateAppConfig_Invalid 测试每个非法字段都被报告
func TestValidateAppConfig_Invalid(t *testing.T) {
	err := ValidateAppConfig(&types.AppConfig{
		Log: &types.UserLogConfig{Level: types.StringPtr("verbose")},
		Message: &types.UserMessageConfig{
			CompressionAlgorithm: types.StringPtr("zstd"),
			CompressionLevel:     types.IntPtr(12),
			MaxDecodedBytes:      types.IntPtr(-5),
		},
	})
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs.Errors, 4)

	fields := make([]string, 0, len(verrs.Errors))
	for _, e := range verrs.Errors {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		fields = append(fields, ve.Field)
	}
	assert.Equal(t, []string{
		"log.level",
		"message.compression_algorithm",
		"message.compression_level",
		"message.max_decoded_bytes",
	}, fields)

	var single *ValidationError
	assert.True(t, errors.As(err, &single))
	assert.Contains(t, err.Error(), "zstd")
}

// TestModule_RejectsInvalidConfig 测试非法配置导致模块启动失败
func TestModule_RejectsInvalidConfig(t *testing.T) {
	var provider iconfig.Provider
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() iconfig.AppOptions {
			return StaticAppOptions{Config: &types.AppConfig{
				Message: &types.UserMessageConfig{CompressionAlgorithm: types.StringPtr("lz4")},
			}}
		}),
		Module(),
		fx.Populate(&provider),
	)

	assert.Error(t, app.Err())
}

// TestValidateAppConfig_LogLevels 测试日志级别校验与日志配置使用同一份列表
func TestValidateAppConfig_LogLevels(t *testing.T) {
	for _, l := range types.LogLevels() {
		assert.NoError(t, ValidateAppConfig(&types.AppConfig{
			Log: &types.UserLogConfig{Level: types.StringPtr(string(l))},
		}), string(l))
	}

	err := ValidateAppConfig(&types.AppConfig{Log: &types.UserLogConfig{Level: types.StringPtr("panic")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), types.LogLevelNames())
}
