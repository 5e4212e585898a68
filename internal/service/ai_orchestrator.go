package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"text2learn_backend/internal/config"
	"text2learn_backend/internal/util"
	"text2learn_backend/pkg/logger"
	"text2learn_backend/pkg/monitoring"
)

// AIOrchestrator 按优先级依次尝试各个模型提供商，前一个失败则降级到下一个
type AIOrchestrator struct {
	mu        sync.RWMutex
	providers []TextProvider
}

func NewAIOrchestrator(cfg *config.Config) *AIOrchestrator {
	o := &AIOrchestrator{}
	o.Reload(cfg)
	return o
}

// NewOrchestratorWithProviders 直接注入提供商列表，供测试使用
func NewOrchestratorWithProviders(providers ...TextProvider) *AIOrchestrator {
	return &AIOrchestrator{providers: providers}
}

// Reload 根据最新配置重建提供商链，配置热更新时调用
func (o *AIOrchestrator) Reload(cfg *config.Config) {
	var providers []TextProvider
	if cfg.AI.Gemini.APIKey != "" {
		providers = append(providers, NewGeminiProvider(cfg.AI.Gemini))
	}
	if cfg.AI.OpenAI.APIKey != "" {
		providers = append(providers, NewOpenAIProvider(cfg.AI.OpenAI))
	}
	if cfg.AI.DeepSeek.APIKey != "" {
		providers = append(providers, NewDeepSeekProvider(cfg.AI.DeepSeek))
	}

	o.mu.Lock()
	o.providers = providers
	o.mu.Unlock()

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Log.Info("AI提供商链已加载", zap.Strings("providers", names))
}

// Providers 返回当前链中提供商名称，按尝试顺序
func (o *AIOrchestrator) Providers() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.providers))
	for _, p := range o.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate 依次尝试每个提供商，第一个返回非空文本的结果即被采用。
// 所有提供商都失败时返回 ErrGenerationUnavailable。
func (o *AIOrchestrator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	o.mu.RLock()
	providers := o.providers
	o.mu.RUnlock()

	if len(providers) == 0 {
		return "", fmt.Errorf("%w: no providers configured", util.ErrGenerationUnavailable)
	}

	var lastErr error
	for _, p := range providers {
		start := time.Now()
		text, err := p.Generate(ctx, prompt, opts)
		if err == nil && text == "" {
			err = fmt.Errorf("%s returned empty text", p.Name())
		}
		monitoring.ObserveGeneration(p.Name(), err, time.Since(start))
		if err == nil {
			return text, nil
		}
		lastErr = err
		logger.Log.Warn("提供商生成失败，尝试下一个",
			zap.String("provider", p.Name()),
			zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}

	return "", fmt.Errorf("%w: %v", util.ErrGenerationUnavailable, lastErr)
}
