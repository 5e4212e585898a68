package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/util"
)

func intPtr(v int) *int { return &v }

const validOutlineJSON = `{
	"title": "Go 入门",
	"description": "从零开始学习 Go",
	"tags": ["go", "backend"],
	"modules": [
		{"title": "基础", "lessons": ["变量", "函数"]},
		{"title": "并发", "lessons": ["goroutine", "channel", "select"]}
	]
}`

func TestGenerateOutline_EmptyTopicSkipsNetwork(t *testing.T) {
	provider := &stubProvider{name: "gemini", out: validOutlineJSON}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	_, err := svc.GenerateOutline(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTopicRequired))
	assert.Equal(t, 0, provider.calls, "空主题不应触发任何提供商调用")
}

func TestGenerateOutline_ParsesFencedOutput(t *testing.T) {
	provider := &stubProvider{name: "gemini", out: "```json\n" + validOutlineJSON + "\n```"}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	outline, err := svc.GenerateOutline(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, "Go 入门", outline.Title)
	require.Len(t, outline.Modules, 2)
	assert.Equal(t, []string{"变量", "函数"}, outline.Modules[0].Lessons)
	assert.Len(t, outline.Modules[1].Lessons, 3)
}

func TestGenerateOutline_MalformedOutputNotRetried(t *testing.T) {
	first := &stubProvider{name: "gemini", out: "{not json at all"}
	second := &stubProvider{name: "openai", out: validOutlineJSON}
	svc := NewGenerationService(NewOrchestratorWithProviders(first, second))

	_, err := svc.GenerateOutline(context.Background(), "Go")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "畸形输出不应再换提供商重试")
}

func TestGenerateOutline_MissingModulesRejected(t *testing.T) {
	provider := &stubProvider{name: "gemini", out: `{"title": "空课程", "modules": []}`}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	_, err := svc.GenerateOutline(context.Background(), "Go")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))
}

func TestGenerateLesson_ValidPayload(t *testing.T) {
	provider := &stubProvider{name: "gemini", out: `{
		"title": "goroutine",
		"objectives": ["理解并发模型"],
		"content": [
			{"type": "heading", "text": "Goroutines"},
			{"type": "paragraph", "text": "Lightweight threads."},
			{"type": "code", "language": "go", "text": "go func() {}()"},
			{"type": "video", "query": "golang goroutines tutorial"},
			{"type": "mcq", "question": "What starts a goroutine?", "options": ["go", "run", "start"], "answer": 0, "explanation": "The go keyword."}
		]
	}`}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	payload, err := svc.GenerateLesson(context.Background(), "Go 入门", "并发", "goroutine")
	require.NoError(t, err)
	assert.Equal(t, "goroutine", payload.Title)
	assert.Len(t, payload.Content, 5)
}

func TestGenerateLesson_MCQAnswerOutOfRange(t *testing.T) {
	provider := &stubProvider{name: "gemini", out: `{
		"title": "x",
		"content": [
			{"type": "mcq", "question": "q", "options": ["a", "b"], "answer": 5}
		]
	}`}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	_, err := svc.GenerateLesson(context.Background(), "c", "m", "l")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))
}

func TestGenerateLesson_UnknownBlockTypeRejected(t *testing.T) {
	provider := &stubProvider{name: "gemini", out: `{
		"title": "x",
		"content": [
			{"type": "carousel", "text": "nope"}
		]
	}`}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	_, err := svc.GenerateLesson(context.Background(), "c", "m", "l")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))
}

func TestTranslateToHinglish_RawPassthrough(t *testing.T) {
	// 翻译结果是纯文本，不应被当作 JSON 解析
	provider := &stubProvider{name: "gemini", out: "  Yeh lesson variables ke baare mein hai.  "}
	svc := NewGenerationService(NewOrchestratorWithProviders(provider))

	out, err := svc.TranslateToHinglish(context.Background(), "This lesson is about variables.")
	require.NoError(t, err)
	assert.Equal(t, "Yeh lesson variables ke baare mein hai.", out)
}

func TestValidateContentBlocks(t *testing.T) {
	cases := []struct {
		name    string
		blocks  []model.ContentBlock
		wantErr bool
	}{
		{
			name:   "video with query only",
			blocks: []model.ContentBlock{{Type: model.BlockVideo, Query: "golang"}},
		},
		{
			name:   "video with url only",
			blocks: []model.ContentBlock{{Type: model.BlockVideo, URL: "https://youtube.com/watch?v=x"}},
		},
		{
			name:    "video without query or url",
			blocks:  []model.ContentBlock{{Type: model.BlockVideo}},
			wantErr: true,
		},
		{
			name:    "paragraph without text",
			blocks:  []model.ContentBlock{{Type: model.BlockParagraph, Text: "  "}},
			wantErr: true,
		},
		{
			name:    "mcq with single option",
			blocks:  []model.ContentBlock{{Type: model.BlockMCQ, Question: "q", Options: []string{"a"}, Answer: intPtr(0)}},
			wantErr: true,
		},
		{
			name:    "mcq without answer",
			blocks:  []model.ContentBlock{{Type: model.BlockMCQ, Question: "q", Options: []string{"a", "b"}}},
			wantErr: true,
		},
		{
			name:   "mcq answer at upper bound",
			blocks: []model.ContentBlock{{Type: model.BlockMCQ, Question: "q", Options: []string{"a", "b"}, Answer: intPtr(1)}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateContentBlocks(tc.blocks)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
