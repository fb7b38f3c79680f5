package types

// MessageEnvelope 传输信封
//
// 将编码后的字节与压缩标志、优先级绑定在一起，由外部传输层负责持久化/发送。
// 没有版本号或魔数：Compressed 是接收方正确解码的唯一带外信号。
type MessageEnvelope struct {
	Priority   MessagePriority `json:"priority"`   // 发送优先级
	Compressed bool            `json:"compressed"` // 负载是否经过压缩变换
	Payload    []byte          `json:"payload"`    // 编码后的负载（JSON 中为 base64）
}
