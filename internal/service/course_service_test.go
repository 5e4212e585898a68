package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
	"text2learn_backend/internal/util"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.CourseSave{},
		&model.LessonCompletion{},
	))
	return db
}

func newCourseService(t *testing.T, db *gorm.DB, providerOutput string) *CourseService {
	t.Helper()
	generation := NewGenerationService(NewOrchestratorWithProviders(
		&stubProvider{name: "gemini", out: providerOutput},
	))
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
		generation,
		nil,
	)
}

func TestGenerateCourse_PersistsHierarchy(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	course, err := svc.GenerateCourse(context.Background(), 7, "Go")
	require.NoError(t, err)
	assert.Equal(t, uint(7), course.CreatorID)
	assert.Equal(t, "Go 入门", course.Title)
	assert.Equal(t, []string{"go", "backend"}, []string(course.Tags))

	// 重新加载验证持久化结果与顺序
	loaded, err := svc.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Modules, 2)
	assert.Equal(t, "基础", loaded.Modules[0].Title)
	assert.Equal(t, 0, loaded.Modules[0].OrderIndex)
	assert.Equal(t, "并发", loaded.Modules[1].Title)
	assert.Equal(t, 1, loaded.Modules[1].OrderIndex)

	require.Len(t, loaded.Modules[0].Lessons, 2)
	require.Len(t, loaded.Modules[1].Lessons, 3)
	for j, lesson := range loaded.Modules[1].Lessons {
		assert.Equal(t, j, lesson.OrderIndex)
		assert.False(t, lesson.IsEnriched, "新课时应为桩状态")
		assert.Empty(t, lesson.Content)
	}
}

func TestGenerateCourse_EmptyTopicCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	_, err := svc.GenerateCourse(context.Background(), 1, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTopicRequired))

	var count int64
	db.Model(&model.Course{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetCourse_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	_, err := svc.GetCourse(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrCourseNotFound))
}

func TestDeleteCourse_OnlyCreator(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	course, err := svc.GenerateCourse(context.Background(), 1, "Go")
	require.NoError(t, err)

	err = svc.DeleteCourse(context.Background(), 2, course.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrNotCourseOwner))

	// 未授权的删除不应影响数据
	loaded, err := svc.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Modules, 2)
}

func TestDeleteCourse_CascadesHierarchy(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	course, err := svc.GenerateCourse(context.Background(), 1, "Go")
	require.NoError(t, err)
	require.NoError(t, svc.SaveCourse(3, course.ID))

	require.NoError(t, svc.DeleteCourse(context.Background(), 1, course.ID))

	_, err = svc.GetCourse(context.Background(), course.ID)
	assert.True(t, errors.Is(err, util.ErrCourseNotFound))

	var modules, lessons, saves int64
	db.Model(&model.CourseModule{}).Count(&modules)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.CourseSave{}).Count(&saves)
	assert.Zero(t, modules)
	assert.Zero(t, lessons)
	assert.Zero(t, saves)
}

func TestSaveCourse_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	course, err := svc.GenerateCourse(context.Background(), 1, "Go")
	require.NoError(t, err)

	require.NoError(t, svc.SaveCourse(2, course.ID))
	require.NoError(t, svc.SaveCourse(2, course.ID))

	saved, err := svc.ListSaved(2)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, course.ID, saved[0].ID)
}

func TestUnsaveCourse_IdempotentAndResavable(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	course, err := svc.GenerateCourse(context.Background(), 1, "Go")
	require.NoError(t, err)

	require.NoError(t, svc.SaveCourse(2, course.ID))
	require.NoError(t, svc.UnsaveCourse(2, course.ID))
	require.NoError(t, svc.UnsaveCourse(2, course.ID))

	saved, err := svc.ListSaved(2)
	require.NoError(t, err)
	assert.Empty(t, saved)

	// 取消收藏后可以重新收藏
	require.NoError(t, svc.SaveCourse(2, course.ID))
	saved, err = svc.ListSaved(2)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestSaveCourse_MissingCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	err := svc.SaveCourse(1, 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrCourseNotFound))
}

func TestListByCreator_OnlyOwnCourses(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(t, db, validOutlineJSON)

	_, err := svc.GenerateCourse(context.Background(), 1, "Go")
	require.NoError(t, err)
	_, err = svc.GenerateCourse(context.Background(), 2, "Rust")
	require.NoError(t, err)

	mine, err := svc.ListByCreator(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(1), mine[0].CreatorID)
	assert.Len(t, mine[0].Modules, 2, "列表也应返回完整层级")
}
