package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text2learn_backend/internal/model"
)

func TestRenderLessonPDF(t *testing.T) {
	answer := 0
	lesson := &model.Lesson{
		Title:      "goroutine",
		Objectives: []string{"理解并发模型"},
		Content: []model.ContentBlock{
			{Type: model.BlockHeading, Text: "Goroutines"},
			{Type: model.BlockParagraph, Text: "Lightweight threads managed by the runtime."},
			{Type: model.BlockCode, Language: "go", Text: "go doWork()"},
			{Type: model.BlockVideo, Query: "golang goroutines"},
			{Type: model.BlockMCQ, Question: "Which keyword?", Options: []string{"go", "run"}, Answer: &answer, Explanation: "go starts it"},
		},
		HinglishText: "Yeh goroutines ke baare mein hai.",
	}

	data, err := renderLessonPDF(lesson)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderLessonPDF_StubLesson(t *testing.T) {
	// 未生成内容的桩课时也能导出，只含标题
	data, err := renderLessonPDF(&model.Lesson{Title: "channel"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
