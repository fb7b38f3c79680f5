// Package priority 按消息内容判定发送优先级
//
// 判定基于子串包含而非结构化解析：调用方可能传入完整 JSON，也可能只传入
// 一个轻量的类型标识字符串，分级器不能失败，也不依赖任何 schema。
//
// 已知限制：如果消息正文恰好包含某个标记（例如聊天文本里写了 "type":"ping"），
// 消息会被误判。修正它需要改为解析类型字段，会改变现有行为，因此保持原样。
package priority

import (
	"strings"

	"github.com/weisyn/vpnroom/pkg/types"
)

// Priority 兼容别名（定义迁至 pkg/types）
type Priority = types.MessagePriority

// 级别常量别名
const (
	Critical = types.PriorityCritical
	High     = types.PriorityHigh
	Normal   = types.PriorityNormal
	Low      = types.PriorityLow
)

// Classify 判定消息优先级
//
// 对任意文本（包括残缺的 JSON）都返回确定的级别；纯函数，可并发调用。
func Classify(message string) Priority {
	for _, r := range rules {
		if r.matches(message) {
			return r.Tier
		}
	}
	return Normal
}

// IsCritical 等价于 Classify(message) == Critical，供调用方决定是否直接绕过队列
func IsCritical(message string) bool {
	return Classify(message) == Critical
}

func (r Rule) matches(message string) bool {
	for _, m := range r.Tagged {
		if strings.Contains(message, m) {
			return true
		}
	}
	for _, m := range r.Bare {
		if strings.Contains(message, m) {
			return true
		}
	}
	return false
}
