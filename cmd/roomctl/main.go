// roomctl 消息分级与负载编解码命令行工具
//
// 用于在命令行中检查传输层会如何处理一条消息：
//
//	roomctl classify '{"type":"auth_init"}'
//	roomctl encode < message.json
//	roomctl seal '{"type":"chat","msg":"hi"}' | roomctl open
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
