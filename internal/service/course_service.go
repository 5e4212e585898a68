package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
	"text2learn_backend/internal/util"
	"text2learn_backend/pkg/logger"
)

const courseCacheTTL = 10 * time.Minute

// CourseService 课程编排：大纲生成、层级持久化、查询缓存与收藏
type CourseService struct {
	courseRepo *repository.CourseRepository
	lessonRepo *repository.LessonRepository
	generation *GenerationService
	redis      *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, lessonRepo *repository.LessonRepository, generation *GenerationService, rdb *redis.Client) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		generation: generation,
		redis:      rdb,
	}
}

// GenerateCourse 根据主题生成大纲并持久化完整课程层级。
// 课时以桩形式创建，内容留待单独生成。
func (s *CourseService) GenerateCourse(ctx context.Context, userID uint, topic string) (*model.Course, error) {
	outline, err := s.generation.GenerateOutline(ctx, topic)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:       outline.Title,
		Description: outline.Description,
		CreatorID:   userID,
		Tags:        outline.Tags,
	}
	for _, m := range outline.Modules {
		mod := model.CourseModule{Title: m.Title}
		for _, lessonTitle := range m.Lessons {
			mod.Lessons = append(mod.Lessons, model.Lesson{Title: lessonTitle})
		}
		course.Modules = append(course.Modules, mod)
	}

	if err := s.courseRepo.CreateWithStructure(course); err != nil {
		return nil, err
	}

	logger.Log.Info("课程生成成功",
		zap.Uint("courseID", course.ID),
		zap.Uint("userID", userID),
		zap.Int("modules", len(course.Modules)))
	return course, nil
}

// GetCourse 返回完整课程层级，命中缓存时跳过数据库
func (s *CourseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	cacheKey := fmt.Sprintf("course:%d", id)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var course model.Course
			if err := json.Unmarshal([]byte(cached), &course); err == nil {
				return &course, nil
			}
		}
	}

	course, err := s.courseRepo.FindByIDPopulated(id)
	if err != nil {
		return nil, err
	}

	// 层级加载降级时不写缓存，否则残缺数据会被钉住整个TTL
	if s.redis != nil && len(course.Modules) > 0 {
		if data, err := json.Marshal(course); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("课程缓存写入失败", zap.Uint("courseID", id), zap.Error(err))
			}
		}
	}
	return course, nil
}

// ListByCreator 返回用户创建的课程列表
func (s *CourseService) ListByCreator(userID uint) ([]model.Course, error) {
	return s.courseRepo.FindByCreator(userID)
}

// ListSaved 返回用户收藏的课程列表
func (s *CourseService) ListSaved(userID uint) ([]model.Course, error) {
	return s.courseRepo.FindSaved(userID)
}

// DeleteCourse 仅允许创建者删除，级联移除整个层级
func (s *CourseService) DeleteCourse(ctx context.Context, userID, courseID uint) error {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course.CreatorID != userID {
		return util.ErrNotCourseOwner
	}
	if err := s.courseRepo.Delete(courseID); err != nil {
		return err
	}
	s.invalidateCache(ctx, courseID)
	return nil
}

// SaveCourse 收藏课程，幂等
func (s *CourseService) SaveCourse(userID, courseID uint) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return err
	}
	return s.courseRepo.Save(userID, courseID)
}

// UnsaveCourse 取消收藏，幂等
func (s *CourseService) UnsaveCourse(userID, courseID uint) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return err
	}
	return s.courseRepo.Unsave(userID, courseID)
}

func (s *CourseService) invalidateCache(ctx context.Context, courseID uint) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, fmt.Sprintf("course:%d", courseID)).Err(); err != nil {
		logger.Log.Warn("课程缓存失效失败", zap.Uint("courseID", courseID), zap.Error(err))
	}
}
