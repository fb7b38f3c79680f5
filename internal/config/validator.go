package config

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/weisyn/vpnroom/internal/core/message/codec"
	"github.com/weisyn/vpnroom/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidateAppConfig 验证配置文件中出现的字段
//
// 只检查显式配置的值，未出现的字段由各模块使用默认值。
// 收发双方的压缩算法必须一致，写错的算法名如果静默回退会导致对端无法解码，因此 fail-fast。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	if appConfig == nil {
		return nil
	}
	var errors []error

	if lc := appConfig.Log; lc != nil && lc.Level != nil {
		if !types.LogLevel(strings.ToLower(strings.TrimSpace(*lc.Level))).Valid() {
			errors = append(errors, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("未知的日志级别 %q（可选 %s）", *lc.Level, types.LogLevelNames()),
			})
		}
	}

	if mc := appConfig.Message; mc != nil {
		if mc.CompressionAlgorithm != nil {
			switch codec.Algorithm(*mc.CompressionAlgorithm) {
			case codec.AlgorithmGzip, codec.AlgorithmSnappy:
			default:
				errors = append(errors, &ValidationError{
					Field:   "message.compression_algorithm",
					Message: fmt.Sprintf("不支持的压缩算法 %q（可选 gzip, snappy）", *mc.CompressionAlgorithm),
				})
			}
		}
		if mc.CompressionLevel != nil {
			lvl := *mc.CompressionLevel
			if lvl != gzip.DefaultCompression && (lvl < gzip.BestSpeed || lvl > gzip.BestCompression) {
				errors = append(errors, &ValidationError{
					Field:   "message.compression_level",
					Message: fmt.Sprintf("压缩级别 %d 超出范围（%d 或 %d..%d）", lvl, gzip.DefaultCompression, gzip.BestSpeed, gzip.BestCompression),
				})
			}
		}
		if mc.MaxDecodedBytes != nil && *mc.MaxDecodedBytes < 0 {
			errors = append(errors, &ValidationError{
				Field:   "message.max_decoded_bytes",
				Message: "max_decoded_bytes 必须 >= 0（0 表示不限制）",
			})
		}
	}

	if len(errors) > 0 {
		return &ValidationErrors{Errors: errors}
	}
	return nil
}

// ValidationErrors 多个验证错误
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	msg := "配置验证失败，发现以下问题：\n"
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap 支持 errors.As 取出单项错误
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}
