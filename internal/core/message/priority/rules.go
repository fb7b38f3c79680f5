package priority

import "github.com/weisyn/vpnroom/pkg/types"

// Rule 一个优先级规则：命中任一别名即判定为该级别
//
// 两套别名对应系统中并存的两种消息编码约定：
//   - Tagged：带 type 字段的 JSON（如 "type":"auth_init"）
//   - Bare：首字母大写的标识符（如 AuthInit）
//
// 新增编码约定时只需扩展别名列表，不影响级别判定逻辑。
type Rule struct {
	Tier   types.MessagePriority
	Tagged []string
	Bare   []string
}

// rules 按优先级从高到低排列，首个命中的规则生效。
// Normal 不在表中：未命中任何规则即为 Normal。
var rules = []Rule{
	{
		Tier: types.PriorityCritical,
		Tagged: []string{
			`"type":"auth"`,
			`"type":"auth_init"`,
			`"type":"auth_response"`,
			`"type":"key_exchange"`,
		},
		Bare: []string{"KeyExchange", "AuthInit", "AuthResponse"},
	},
	{
		Tier: types.PriorityHigh,
		Tagged: []string{
			`"type":"entropy"`,
			`"type":"entropy_commit"`,
			`"type":"entropy_reveal"`,
			`"type":"peer_join"`,
			`"type":"peer_leave"`,
		},
		Bare: []string{"PeerJoined", "PeerLeft"},
	},
	{
		Tier: types.PriorityLow,
		Tagged: []string{
			`"type":"ping"`,
			`"type":"pong"`,
		},
		Bare: []string{"Pong"},
	},
}

// Rules 返回规则表的副本
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Tier:   r.Tier,
			Tagged: append([]string(nil), r.Tagged...),
			Bare:   append([]string(nil), r.Bare...),
		}
	}
	return out
}

// Markers 返回某一级别的全部标记（两套别名合并）；Normal 没有标记
func Markers(tier types.MessagePriority) []string {
	for _, r := range rules {
		if r.Tier == tier {
			return r.markers()
		}
	}
	return nil
}

func (r Rule) markers() []string {
	out := make([]string, 0, len(r.Tagged)+len(r.Bare))
	out = append(out, r.Tagged...)
	return append(out, r.Bare...)
}
