package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/util"
)

// CourseOutline 模型生成的课程大纲
type CourseOutline struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Modules     []OutlineModule `json:"modules" validate:"required,min=1,dive"`
}

type OutlineModule struct {
	Title   string   `json:"title" validate:"required"`
	Lessons []string `json:"lessons" validate:"required,min=1"`
}

// LessonPayload 模型生成的课时详细内容
type LessonPayload struct {
	Title      string               `json:"title"`
	Objectives []string             `json:"objectives"`
	Content    []model.ContentBlock `json:"content" validate:"required,min=1"`
}

const (
	outlineSystemPrompt = "You are an expert curriculum designer. Respond with valid JSON only, no markdown fences and no commentary."

	lessonSystemPrompt = "You are an expert educator creating detailed lesson content. Respond with valid JSON only, no markdown fences and no commentary."

	hinglishSystemPrompt = "You are a translator. Translate the given English educational text into Hinglish (Hindi written in Latin script mixed with English technical terms). Keep technical terms in English. Respond with the translated text only."
)

// GenerationService 负责构造提示词并把模型输出规范化为领域结构
type GenerationService struct {
	orchestrator *AIOrchestrator
	validate     *validator.Validate
}

func NewGenerationService(orchestrator *AIOrchestrator) *GenerationService {
	return &GenerationService{
		orchestrator: orchestrator,
		validate:     validator.New(),
	}
}

// GenerateOutline 根据主题生成课程大纲
func (s *GenerationService) GenerateOutline(ctx context.Context, topic string) (*CourseOutline, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, util.ErrTopicRequired
	}

	prompt := fmt.Sprintf(`Create a structured course outline for the topic: "%s".
Return a JSON object with this exact shape:
{
  "title": "course title",
  "description": "one-paragraph course description",
  "tags": ["tag1", "tag2"],
  "modules": [
    {
      "title": "module title",
      "lessons": ["lesson title 1", "lesson title 2"]
    }
  ]
}
Include 3-6 modules, each with 2-5 lessons. Lesson entries are titles only.`, topic)

	raw, err := s.orchestrator.Generate(ctx, prompt, GenerateOptions{
		System:      outlineSystemPrompt,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var outline CourseOutline
	if err := DecodeModelJSON(raw, &outline); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(&outline); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
	}
	return &outline, nil
}

// GenerateLesson 为指定课时生成详细内容块
func (s *GenerationService) GenerateLesson(ctx context.Context, courseTitle, moduleTitle, lessonTitle string) (*LessonPayload, error) {
	prompt := fmt.Sprintf(`Create detailed lesson content.
Course: "%s"
Module: "%s"
Lesson: "%s"
Return a JSON object with this exact shape:
{
  "title": "lesson title",
  "objectives": ["objective 1", "objective 2"],
  "content": [
    {"type": "heading", "text": "..."},
    {"type": "paragraph", "text": "..."},
    {"type": "code", "language": "...", "text": "..."},
    {"type": "video", "query": "youtube search query"},
    {"type": "mcq", "question": "...", "options": ["a", "b", "c", "d"], "answer": 0, "explanation": "..."}
  ]
}
Use only the block types shown. Include at least one heading, several paragraphs, a code block when the topic is technical, one video block, and one mcq block.`, courseTitle, moduleTitle, lessonTitle)

	raw, err := s.orchestrator.Generate(ctx, prompt, GenerateOptions{
		System:      lessonSystemPrompt,
		Temperature: defaultTemperature,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}

	var payload LessonPayload
	if err := DecodeModelJSON(raw, &payload); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
	}
	if err := ValidateContentBlocks(payload.Content); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
	}
	return &payload, nil
}

// TranslateToHinglish 把课时文本翻译成 Hinglish，输出为纯文本不做 JSON 解析
func (s *GenerationService) TranslateToHinglish(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", util.ErrTopicRequired
	}

	raw, err := s.orchestrator.Generate(ctx, text, GenerateOptions{
		System:      hinglishSystemPrompt,
		Temperature: defaultTemperature,
		MaxTokens:   800,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// ValidateContentBlocks 逐块校验内容结构，任何不合法的块直接判定失败
func ValidateContentBlocks(blocks []model.ContentBlock) error {
	for i, b := range blocks {
		if !model.KnownBlockType(b.Type) {
			return fmt.Errorf("block %d: unknown type %q", i, b.Type)
		}
		switch b.Type {
		case model.BlockHeading, model.BlockParagraph:
			if strings.TrimSpace(b.Text) == "" {
				return fmt.Errorf("block %d: %s requires text", i, b.Type)
			}
		case model.BlockCode:
			if strings.TrimSpace(b.Text) == "" {
				return fmt.Errorf("block %d: code requires text", i)
			}
		case model.BlockVideo:
			if strings.TrimSpace(b.Query) == "" && strings.TrimSpace(b.URL) == "" {
				return fmt.Errorf("block %d: video requires query or url", i)
			}
		case model.BlockMCQ:
			if strings.TrimSpace(b.Question) == "" {
				return fmt.Errorf("block %d: mcq requires question", i)
			}
			if len(b.Options) < 2 {
				return fmt.Errorf("block %d: mcq requires at least 2 options", i)
			}
			if b.Answer == nil || *b.Answer < 0 || *b.Answer >= len(b.Options) {
				return fmt.Errorf("block %d: mcq answer index out of range", i)
			}
		}
	}
	return nil
}
