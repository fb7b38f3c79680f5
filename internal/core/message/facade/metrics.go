package facade

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/vpnroom/internal/core/message/codec"
	"github.com/weisyn/vpnroom/pkg/types"
)

// 消息优化 Prometheus 指标
//
// 只统计计数类指标，更新开销为常数级，不影响发送路径。
type metrics struct {
	classified   *prometheus.CounterVec
	encoded      *prometheus.CounterVec
	savedBytes   prometheus.Counter
	decodeErrors *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{}
	var err error

	if m.classified, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpnroom",
			Subsystem: "message",
			Name:      "classified_total",
			Help:      "Messages classified, by priority tier.",
		},
		[]string{"priority"},
	)); err != nil {
		return nil, err
	}

	if m.encoded, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpnroom",
			Subsystem: "message",
			Name:      "encoded_total",
			Help:      "Messages encoded, by outcome (below_threshold, compressed, not_smaller, compress_failed).",
		},
		[]string{"outcome"},
	)); err != nil {
		return nil, err
	}

	if m.savedBytes, err = register(reg, prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vpnroom",
			Subsystem: "message",
			Name:      "compression_saved_bytes_total",
			Help:      "Bytes saved by compression (original size minus compressed size).",
		},
	)); err != nil {
		return nil, err
	}

	if m.decodeErrors, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpnroom",
			Subsystem: "message",
			Name:      "decode_errors_total",
			Help:      "Payload decode failures, by kind (malformed, invalid_utf8, oversize).",
		},
		[]string{"kind"},
	)); err != nil {
		return nil, err
	}

	return m, nil
}

// register 注册采集器；已注册过同名采集器时复用已有实例
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observeClassified(p types.MessagePriority) {
	if m == nil {
		return
	}
	m.classified.WithLabelValues(p.String()).Inc()
}

func (m *metrics) observeEncoded(p codec.Payload) {
	if m == nil {
		return
	}
	m.encoded.WithLabelValues(p.Outcome.String()).Inc()
	if p.Compressed {
		m.savedBytes.Add(float64(p.OriginalSize - len(p.Data)))
	}
}

func (m *metrics) observeDecodeError(err error) {
	if m == nil {
		return
	}
	label := "unknown"
	if kind, ok := codec.KindOf(err); ok {
		label = kind.String()
	}
	m.decodeErrors.WithLabelValues(label).Inc()
}
