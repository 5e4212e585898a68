package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text2learn_backend/internal/util"
)

type stubProvider struct {
	name  string
	out   string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	p.calls++
	return p.out, p.err
}

func TestOrchestratorGenerate_FirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "gemini", out: "from gemini"}
	second := &stubProvider{name: "openai", out: "from openai"}
	o := NewOrchestratorWithProviders(first, second)

	text, err := o.Generate(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "from gemini", text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "后备提供商不应被调用")
}

func TestOrchestratorGenerate_FallsThroughInOrder(t *testing.T) {
	first := &stubProvider{name: "gemini", err: errors.New("quota exceeded")}
	second := &stubProvider{name: "openai", out: "from openai"}
	third := &stubProvider{name: "deepseek", out: "from deepseek"}
	o := NewOrchestratorWithProviders(first, second, third)

	text, err := o.Generate(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "from openai", text)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestOrchestratorGenerate_EmptyOutputTreatedAsFailure(t *testing.T) {
	first := &stubProvider{name: "gemini", out: ""}
	second := &stubProvider{name: "openai", out: "fallback"}
	o := NewOrchestratorWithProviders(first, second)

	text, err := o.Generate(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", text)
	assert.Equal(t, 1, first.calls)
}

func TestOrchestratorGenerate_AllProvidersFail(t *testing.T) {
	first := &stubProvider{name: "gemini", err: errors.New("boom")}
	second := &stubProvider{name: "openai", err: errors.New("also boom")}
	o := NewOrchestratorWithProviders(first, second)

	_, err := o.Generate(context.Background(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrGenerationUnavailable))
	assert.Equal(t, 1, first.calls, "每个提供商只尝试一次")
	assert.Equal(t, 1, second.calls)
}

func TestOrchestratorGenerate_NoProviders(t *testing.T) {
	o := NewOrchestratorWithProviders()

	_, err := o.Generate(context.Background(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrGenerationUnavailable))
}

func TestOrchestratorProviders_ReportsOrder(t *testing.T) {
	o := NewOrchestratorWithProviders(
		&stubProvider{name: "gemini"},
		&stubProvider{name: "openai"},
		&stubProvider{name: "deepseek"},
	)
	assert.Equal(t, []string{"gemini", "openai", "deepseek"}, o.Providers())
}
