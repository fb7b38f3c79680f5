// Package message 定义消息优化层对外接口
//
// 📨 **消息优化层 (Message Optimization Layer)**
//
// 本接口聚焦于出站消息的分级与负载压缩，专注于：
// - 优先级分级：按消息内容判定四个有序级别，供发送队列排序或直接绕过队列
// - 负载编解码：超过阈值时尝试压缩，并返回可信的压缩标志
// - 信封封装：将字节、压缩标志与优先级绑定，交给传输层发送
//
// 🎯 **设计原则**
// - 不负责：发送时机、发送队列、加密、重传策略
// - 无状态：所有方法可被任意数量的 goroutine 并发调用
// - 解码错误可恢复：由调用方决定丢弃或请求重传
package message

import "github.com/weisyn/vpnroom/pkg/types"

// Optimizer 消息优化门面接口
type Optimizer interface {
	// Classify 根据消息内容判定优先级，永不失败
	Classify(message string) types.MessagePriority

	// IsCritical 消息是否应绕过队列立即发送
	IsCritical(message string) bool

	// Encode 编码消息，compressed 标志准确反映是否应用了压缩变换
	Encode(message string) (data []byte, compressed bool)

	// Decode 依据 Encode 给出的标志还原原始消息
	Decode(data []byte, compressed bool) (string, error)

	// Seal 分级并编码，生成传输信封
	Seal(message string) types.MessageEnvelope

	// Open 解开传输信封，还原原始消息
	Open(env types.MessageEnvelope) (string, error)
}
