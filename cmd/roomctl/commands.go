package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/vpnroom/internal/app/version"
	"github.com/weisyn/vpnroom/internal/core/message/facade"
	"github.com/weisyn/vpnroom/pkg/types"
)

// encodeResult encode 子命令输出
type encodeResult struct {
	Priority     types.MessagePriority `json:"priority"`
	Compressed   bool                  `json:"compressed"`
	Outcome      string                `json:"outcome"`
	OriginalSize int                   `json:"original_size"`
	EncodedSize  int                   `json:"encoded_size"`
	Payload      []byte                `json:"payload"`
}

// readMessage 读取消息：优先使用参数，否则读取标准输入（原样保留，不去除换行）
func readMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("读取标准输入失败: %w", err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [message]",
		Short: "判定消息优先级",
		Long: `按内容判定消息优先级（critical / high / normal / low）。

示例：
  roomctl classify '{"type":"auth_init"}'     # critical
  echo '{"type":"ping"}' | roomctl classify   # low`,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), opts, func(svc *facade.Service) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), svc.Classify(msg))
				return err
			})
		},
	}
}

func newEncodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [message]",
		Short: "编码消息负载",
		Long:  "按传输层规则编码消息，输出压缩标志、结果原因与 base64 负载",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), opts, func(svc *facade.Service) error {
				p := svc.EncodePayload(msg)
				return writeJSON(cmd.OutOrStdout(), encodeResult{
					Priority:     svc.Classify(msg),
					Compressed:   p.Compressed,
					Outcome:      p.Outcome.String(),
					OriginalSize: p.OriginalSize,
					EncodedSize:  len(p.Data),
					Payload:      p.Data,
				})
			})
		},
	}
}

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	var (
		payload    string
		compressed bool
	)
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "还原消息负载",
		Long: `依据压缩标志还原 base64 负载（--payload 缺省时读取标准输入）。

标志必须与编码时给出的一致，解码不做格式探测。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded := payload
			if encoded == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("读取标准输入失败: %w", err)
				}
				encoded = strings.TrimSpace(string(data))
			}
			raw, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return fmt.Errorf("payload 不是合法的 base64: %w", err)
			}
			return withService(cmd.Context(), opts, func(svc *facade.Service) error {
				msg, err := svc.Decode(raw, compressed)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), msg)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&payload, "payload", "p", "", "base64 编码的负载")
	cmd.Flags().BoolVar(&compressed, "compressed", false, "负载是否经过压缩")
	return cmd
}

func newSealCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seal [message]",
		Short: "分级并编码为传输信封",
		Long:  "输出 JSON 信封：priority、compressed、payload（base64）",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), opts, func(svc *facade.Service) error {
				return writeJSON(cmd.OutOrStdout(), svc.Seal(msg))
			})
		},
	}
}

func newOpenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open [envelope-json]",
		Short: "解开传输信封",
		Long:  "读取 seal 输出的 JSON 信封（参数或标准输入），输出原始消息",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			var env types.MessageEnvelope
			if err := json.Unmarshal([]byte(raw), &env); err != nil {
				return fmt.Errorf("解析信封失败: %w", err)
			}
			return withService(cmd.Context(), opts, func(svc *facade.Service) error {
				msg, err := svc.Open(env)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), msg)
				return err
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetBuildInfo())
			return err
		},
	}
}
