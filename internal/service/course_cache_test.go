package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func newCachedCourseService(t *testing.T, db *gorm.DB, rdb *redis.Client) *CourseService {
	t.Helper()
	generation := NewGenerationService(NewOrchestratorWithProviders(
		&stubProvider{name: "gemini", out: validOutlineJSON},
	))
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
		generation,
		rdb,
	)
}

func newCachedLessonService(t *testing.T, db *gorm.DB, rdb *redis.Client, providerOutput string) *LessonService {
	t.Helper()
	generation := NewGenerationService(NewOrchestratorWithProviders(
		&stubProvider{name: "gemini", out: providerOutput},
	))
	return NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewCourseRepository(db),
		generation,
		rdb,
	)
}

func courseCacheKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

func TestGetCourse_SecondCallServedFromCache(t *testing.T) {
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	course := seedCourse(t, db, 1)
	svc := newCachedCourseService(t, db, rdb)
	ctx := context.Background()

	first, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, first.Modules, 1)

	ttl, err := rdb.TTL(ctx, courseCacheKey(course.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0, "缓存应带过期时间")
	assert.LessOrEqual(t, ttl, courseCacheTTL)

	// 绕过服务层直接改库，命中缓存时应读到旧标题
	require.NoError(t, db.Model(&model.Course{}).
		Where("id = ?", course.ID).
		Update("title", "改库后的标题").Error)

	second, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)

	// 缓存失效后才能看到新数据
	require.NoError(t, rdb.Del(ctx, courseCacheKey(course.ID)).Err())
	third, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "改库后的标题", third.Title)
}

func TestGetCourse_DegradedHierarchyNotCached(t *testing.T) {
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	course := seedCourse(t, db, 1)
	svc := newCachedCourseService(t, db, rdb)
	ctx := context.Background()

	// 删除模块表使层级加载失败，仓储降级返回无模块的课程
	require.NoError(t, db.Migrator().DropTable(&model.CourseModule{}))

	got, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Modules)

	exists, err := rdb.Exists(ctx, courseCacheKey(course.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "降级结果不应写入缓存")
}

func TestDeleteCourse_EvictsCache(t *testing.T) {
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	course := seedCourse(t, db, 1)
	svc := newCachedCourseService(t, db, rdb)
	ctx := context.Background()

	_, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(ctx, 1, course.ID))

	exists, err := rdb.Exists(ctx, courseCacheKey(course.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestUpdateLesson_EvictsCourseCache(t *testing.T) {
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	course := seedCourse(t, db, 1)
	courseSvc := newCachedCourseService(t, db, rdb)
	lessonSvc := newCachedLessonService(t, db, rdb, validLessonJSON)
	ctx := context.Background()

	_, err := courseSvc.GetCourse(ctx, course.ID)
	require.NoError(t, err)

	title := "重命名后的课时"
	_, err = lessonSvc.UpdateLesson(ctx, course.Modules[0].Lessons[0].ID, LessonUpdate{Title: &title})
	require.NoError(t, err)

	exists, err := rdb.Exists(ctx, courseCacheKey(course.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	reloaded, err := courseSvc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, title, reloaded.Modules[0].Lessons[0].Title)
}

func TestGenerateContent_EvictsCourseCache(t *testing.T) {
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	course := seedCourse(t, db, 1)
	courseSvc := newCachedCourseService(t, db, rdb)
	lessonSvc := newCachedLessonService(t, db, rdb, validLessonJSON)
	ctx := context.Background()

	_, err := courseSvc.GetCourse(ctx, course.ID)
	require.NoError(t, err)

	mod := course.Modules[0]
	_, err = lessonSvc.GenerateContent(ctx, course.ID, mod.ID, mod.Lessons[0].ID)
	require.NoError(t, err)

	exists, err := rdb.Exists(ctx, courseCacheKey(course.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	reloaded, err := courseSvc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Modules[0].Lessons[0].IsEnriched)
}

func TestTranslateLesson_EvictsCourseCache(t *testing.T) {
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	course := seedCourse(t, db, 1)
	courseSvc := newCachedCourseService(t, db, rdb)
	lessonSvc := newCachedLessonService(t, db, rdb, "Yeh lesson Hinglish mein hai.")
	ctx := context.Background()

	_, err := courseSvc.GetCourse(ctx, course.ID)
	require.NoError(t, err)

	lessonID := course.Modules[0].Lessons[0].ID
	_, err = lessonSvc.TranslateLesson(ctx, lessonID, "原始课时文本")
	require.NoError(t, err)

	exists, err := rdb.Exists(ctx, courseCacheKey(course.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "翻译写入后旧课程详情不应继续命中")

	reloaded, err := courseSvc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yeh lesson Hinglish mein hai.", reloaded.Modules[0].Lessons[0].HinglishText)
}
