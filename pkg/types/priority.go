package types

import "fmt"

// MessagePriority 消息优先级（按发送紧急程度排序，数值越小越紧急）
//
// 排序关系：Critical < High < Normal < Low
type MessagePriority uint8

const (
	// PriorityCritical 认证 / 密钥交换，绕过普通队列立即发送
	PriorityCritical MessagePriority = iota
	// PriorityHigh 成员变更与熵贡献事件
	PriorityHigh
	// PriorityNormal 默认级别（聊天、数据包）
	PriorityNormal
	// PriorityLow 心跳探测（ping/pong），可延后
	PriorityLow
)

// priorityNames 日志与指标标签使用的小写名称
var priorityNames = [...]string{
	PriorityCritical: "critical",
	PriorityHigh:     "high",
	PriorityNormal:   "normal",
	PriorityLow:      "low",
}

// priorityWireNames 信封中的级别名称，与对端既有实现的编码保持一致
var priorityWireNames = [...]string{
	PriorityCritical: "Critical",
	PriorityHigh:     "High",
	PriorityNormal:   "Normal",
	PriorityLow:      "Low",
}

// String 返回优先级名称
func (p MessagePriority) String() string {
	if p.Valid() {
		return priorityNames[p]
	}
	return fmt.Sprintf("priority(%d)", uint8(p))
}

// Valid 是否为已定义的四个级别之一
func (p MessagePriority) Valid() bool {
	return p <= PriorityLow
}

// Less 判断 p 是否比 other 更紧急
func (p MessagePriority) Less(other MessagePriority) bool {
	return p < other
}

// IsCritical 是否为最高优先级
func (p MessagePriority) IsCritical() bool {
	return p == PriorityCritical
}

// MarshalText 实现 encoding.TextMarshaler
func (p MessagePriority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid message priority: %d", uint8(p))
	}
	return []byte(priorityWireNames[p]), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (p *MessagePriority) UnmarshalText(text []byte) error {
	parsed, err := ParseMessagePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseMessagePriority 按名称解析优先级
//
// 接受信封名称（Critical）与小写名称（critical），其他大小写形式视为未知。
func ParseMessagePriority(name string) (MessagePriority, error) {
	for i := range priorityWireNames {
		if name == priorityWireNames[i] || name == priorityNames[i] {
			return MessagePriority(i), nil
		}
	}
	return PriorityNormal, fmt.Errorf("unknown message priority: %q", name)
}
