// Package facade 提供消息优化层的统一门面实现
//
// 门面在纯函数（priority / codec）之上附加结构化日志与 Prometheus 指标，
// 并提供信封封装；所有副作用都集中在这里，底层组件保持无状态。
package facade

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	messageconfig "github.com/weisyn/vpnroom/internal/config/message"
	infralog "github.com/weisyn/vpnroom/internal/core/infrastructure/log"
	"github.com/weisyn/vpnroom/internal/core/message/codec"
	"github.com/weisyn/vpnroom/internal/core/message/priority"
	logiface "github.com/weisyn/vpnroom/pkg/interfaces/infrastructure/log"
	iface "github.com/weisyn/vpnroom/pkg/interfaces/message"
	"github.com/weisyn/vpnroom/pkg/types"
)

var _ iface.Optimizer = (*Service)(nil)

// Service 消息优化门面
type Service struct {
	logger  logiface.Logger // 结构化日志器
	codec   *codec.Codec    // 负载编解码器
	metrics *metrics        // 指标（未启用时为 nil）
}

// New 创建消息优化门面
//
// cfg 为 nil 时使用默认配置；logger 为 nil 时使用全局日志器；
// reg 为 nil 且配置启用指标时注册到 prometheus.DefaultRegisterer。
func New(cfg *messageconfig.Config, logger logiface.Logger, reg prometheus.Registerer) (*Service, error) {
	if cfg == nil {
		cfg = messageconfig.New(nil)
	}
	if logger == nil {
		logger = infralog.GetLogger()
	}

	c, err := codec.New(cfg.CodecOptions())
	if err != nil {
		return nil, fmt.Errorf("创建消息编解码器失败: %w", err)
	}

	s := &Service{logger: logger, codec: c}
	if cfg.IsMetricsEnabled() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		if s.metrics, err = newMetrics(reg); err != nil {
			return nil, fmt.Errorf("注册消息指标失败: %w", err)
		}
	}

	opts := c.Options()
	logger.Debugf("消息编解码器就绪: algorithm=%s level=%d max_decoded_bytes=%d threshold=%d",
		opts.Algorithm, opts.Level, opts.MaxDecodedBytes, codec.CompressionThreshold)
	return s, nil
}

// Classify 判定消息优先级
func (s *Service) Classify(message string) types.MessagePriority {
	p := priority.Classify(message)
	s.metrics.observeClassified(p)
	return p
}

// IsCritical 消息是否应绕过队列
func (s *Service) IsCritical(message string) bool {
	return s.Classify(message).IsCritical()
}

// EncodePayload 编码消息并返回结果原因
func (s *Service) EncodePayload(message string) codec.Payload {
	p := s.codec.Encode(message)
	s.metrics.observeEncoded(p)

	switch p.Outcome {
	case codec.OutcomeCompressed:
		s.logger.Debugf("消息已压缩: %d -> %d bytes", p.OriginalSize, len(p.Data))
	case codec.OutcomeNotSmaller:
		s.logger.Debugf("压缩无收益，保留原始负载: size=%d", p.OriginalSize)
	case codec.OutcomeCompressFailed:
		s.logger.Warnf("压缩失败，回退到原始负载: size=%d", p.OriginalSize)
	}
	return p
}

// Encode 编码消息，返回字节与压缩标志
func (s *Service) Encode(message string) ([]byte, bool) {
	p := s.EncodePayload(message)
	return p.Data, p.Compressed
}

// Decode 依据压缩标志还原消息
func (s *Service) Decode(data []byte, compressed bool) (string, error) {
	msg, err := s.codec.Decode(data, compressed)
	if err != nil {
		s.metrics.observeDecodeError(err)
		s.logger.Warnf("消息解码失败: size=%d compressed=%t: %v", len(data), compressed, err)
		return "", err
	}
	return msg, nil
}

// Seal 分级并编码，生成传输信封
func (s *Service) Seal(message string) types.MessageEnvelope {
	data, compressed := s.Encode(message)
	return types.MessageEnvelope{
		Priority:   s.Classify(message),
		Compressed: compressed,
		Payload:    data,
	}
}

// Open 解开传输信封
func (s *Service) Open(env types.MessageEnvelope) (string, error) {
	msg, err := s.Decode(env.Payload, env.Compressed)
	if err != nil {
		return "", fmt.Errorf("open envelope (priority=%s): %w", env.Priority, err)
	}
	return msg, nil
}
