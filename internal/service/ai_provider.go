package service

import (
	"context"
)

// GenerateOptions 单次生成调用的参数，由调用方显式填写
type GenerateOptions struct {
	System      string  // 系统指令，可为空
	Temperature float64 // 采样温度
	MaxTokens   int     // 输出长度上限，0表示使用适配器默认值
}

// TextProvider 一个生成式文本供应商的统一能力。
// 适配器把供应商特有的错误（网络、非2xx状态、响应体内的错误）
// 统一转换为普通error，编排器据此决定是否切换到下一个供应商。
type TextProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

const (
	defaultMaxTokens   = 1500
	defaultTemperature = 0.2
)
