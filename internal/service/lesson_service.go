package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
	"text2learn_backend/internal/util"
	"text2learn_backend/pkg/logger"
)

// LessonUpdate 课时部分更新，nil 字段保持不变
type LessonUpdate struct {
	Title        *string               `json:"title"`
	Objectives   *[]string             `json:"objectives"`
	Content      *[]model.ContentBlock `json:"content"`
	HinglishText *string               `json:"hinglishText"`
}

// LessonService 课时内容生成、编辑、完成标记与翻译
type LessonService struct {
	lessonRepo *repository.LessonRepository
	courseRepo *repository.CourseRepository
	generation *GenerationService
	redis      *redis.Client
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository, generation *GenerationService, rdb *redis.Client) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
		generation: generation,
		redis:      rdb,
	}
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	return s.lessonRepo.FindByID(id)
}

// UpdateLesson 部分更新课时字段。内容块更新前逐块校验，
// 不合法的块拒绝整个更新。
func (s *LessonService) UpdateLesson(ctx context.Context, id uint, update LessonUpdate) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		lesson.Title = *update.Title
	}
	if update.Objectives != nil {
		lesson.Objectives = *update.Objectives
	}
	if update.Content != nil {
		if err := ValidateContentBlocks(*update.Content); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrMalformedOutput, err)
		}
		lesson.Content = *update.Content
	}
	if update.HinglishText != nil {
		lesson.HinglishText = *update.HinglishText
	}

	if err := s.lessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	s.invalidateCourseCache(ctx, lesson.ModuleID)
	return lesson, nil
}

// GenerateContent 为课时生成详细内容并覆盖写入。
// 先校验 课程→模块→课时 归属链，任何一环不匹配按未找到处理。
// 重复生成采用最后写入获胜，旧内容整体被替换。
func (s *LessonService) GenerateContent(ctx context.Context, courseID, moduleID, lessonID uint) (*model.Lesson, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	mod, err := s.courseRepo.FindModuleByID(moduleID)
	if err != nil {
		return nil, err
	}
	if mod.CourseID != courseID {
		return nil, util.ErrModuleNotFound
	}
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.ModuleID != moduleID {
		return nil, util.ErrLessonNotFound
	}

	payload, err := s.generation.GenerateLesson(ctx, course.Title, mod.Title, lesson.Title)
	if err != nil {
		return nil, err
	}

	if payload.Title != "" {
		lesson.Title = payload.Title
	}
	lesson.Objectives = payload.Objectives
	lesson.Content = payload.Content
	lesson.IsEnriched = true

	if err := s.lessonRepo.Save(lesson); err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, fmt.Sprintf("course:%d", courseID)).Err(); err != nil {
			logger.Log.Warn("课程缓存失效失败", zap.Uint("courseID", courseID), zap.Error(err))
		}
	}

	logger.Log.Info("课时内容生成成功",
		zap.Uint("lessonID", lessonID),
		zap.Int("blocks", len(lesson.Content)))
	return lesson, nil
}

// ToggleComplete 切换用户的课时完成状态，返回切换后的状态
func (s *LessonService) ToggleComplete(userID, lessonID uint) (bool, error) {
	if _, err := s.lessonRepo.FindByID(lessonID); err != nil {
		return false, err
	}
	return s.lessonRepo.ToggleCompletion(userID, lessonID)
}

// CompletedLessons 返回用户已完成的课时 ID 集合
func (s *LessonService) CompletedLessons(userID uint) ([]uint, error) {
	return s.lessonRepo.CompletedLessonIDs(userID)
}

// TranslateLesson 把课时文本翻译成 Hinglish 并持久化在课时上
func (s *LessonService) TranslateLesson(ctx context.Context, lessonID uint, text string) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}

	if text == "" {
		text = lessonPlainText(lesson)
	}
	translated, err := s.generation.TranslateToHinglish(ctx, text)
	if err != nil {
		return nil, err
	}

	lesson.HinglishText = translated
	if err := s.lessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	s.invalidateCourseCache(ctx, lesson.ModuleID)
	return lesson, nil
}

// lessonPlainText 把内容块拼成用于翻译的纯文本
func lessonPlainText(lesson *model.Lesson) string {
	text := lesson.Title
	for _, b := range lesson.Content {
		switch b.Type {
		case model.BlockHeading, model.BlockParagraph:
			text += "\n" + b.Text
		}
	}
	return text
}

// invalidateCourseCache 通过模块反查课程并使其缓存失效
func (s *LessonService) invalidateCourseCache(ctx context.Context, moduleID uint) {
	if s.redis == nil {
		return
	}
	mod, err := s.courseRepo.FindModuleByID(moduleID)
	if err != nil {
		return
	}
	if err := s.redis.Del(ctx, fmt.Sprintf("course:%d", mod.CourseID)).Err(); err != nil {
		logger.Log.Warn("课程缓存失效失败", zap.Uint("courseID", mod.CourseID), zap.Error(err))
	}
}
