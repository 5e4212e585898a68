package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"text2learn_backend/internal/util"
)

// StripCodeFence 去除模型输出中包裹 JSON 的 markdown 代码围栏
func StripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

// DecodeModelJSON 把模型原始输出解析到目标结构。
// 解析失败说明输出本身畸形，不应再换提供商重试。
func DecodeModelJSON(raw string, v interface{}) error {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty output", util.ErrMalformedOutput)
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
	}
	return nil
}
