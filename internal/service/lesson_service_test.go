package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
	"text2learn_backend/internal/util"
)

const validLessonJSON = `{
	"title": "goroutine",
	"objectives": ["理解并发模型", "掌握 go 关键字"],
	"content": [
		{"type": "heading", "text": "Goroutines"},
		{"type": "paragraph", "text": "Goroutines are lightweight threads."},
		{"type": "code", "language": "go", "text": "go doWork()"},
		{"type": "video", "query": "golang goroutines"},
		{"type": "mcq", "question": "Which keyword starts a goroutine?", "options": ["go", "run"], "answer": 0, "explanation": "go starts it"}
	]
}`

// seedCourse 直接通过仓储写入一个 1 模块 2 课时的最小层级
func seedCourse(t *testing.T, db *gorm.DB, creatorID uint) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:     "Go 入门",
		CreatorID: creatorID,
		Modules: []model.CourseModule{
			{
				Title: "并发",
				Lessons: []model.Lesson{
					{Title: "goroutine"},
					{Title: "channel"},
				},
			},
		},
	}
	require.NoError(t, repository.NewCourseRepository(db).CreateWithStructure(course))
	return course
}

func newLessonService(t *testing.T, db *gorm.DB, providerOutput string) *LessonService {
	t.Helper()
	generation := NewGenerationService(NewOrchestratorWithProviders(
		&stubProvider{name: "gemini", out: providerOutput},
	))
	return NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewCourseRepository(db),
		generation,
		nil,
	)
}

func TestGenerateContent_EnrichesStubLesson(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	svc := newLessonService(t, db, validLessonJSON)

	mod := course.Modules[0]
	lesson, err := svc.GenerateContent(context.Background(), course.ID, mod.ID, mod.Lessons[0].ID)
	require.NoError(t, err)

	assert.True(t, lesson.IsEnriched)
	assert.Equal(t, []string{"理解并发模型", "掌握 go 关键字"}, []string(lesson.Objectives))
	require.Len(t, lesson.Content, 5)
	assert.Equal(t, model.BlockHeading, lesson.Content[0].Type)

	// 持久化后的状态一致
	reloaded, err := svc.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsEnriched)
	assert.Len(t, reloaded.Content, 5)
}

func TestGenerateContent_RegenerationOverwrites(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	mod := course.Modules[0]
	lessonID := mod.Lessons[0].ID

	first := newLessonService(t, db, validLessonJSON)
	_, err := first.GenerateContent(context.Background(), course.ID, mod.ID, lessonID)
	require.NoError(t, err)

	second := newLessonService(t, db, `{
		"title": "goroutine 进阶",
		"objectives": ["调度器原理"],
		"content": [
			{"type": "heading", "text": "Scheduler"},
			{"type": "paragraph", "text": "GMP model."}
		]
	}`)
	lesson, err := second.GenerateContent(context.Background(), course.ID, mod.ID, lessonID)
	require.NoError(t, err)

	// 最后写入获胜：旧内容整体被替换
	assert.Equal(t, "goroutine 进阶", lesson.Title)
	assert.Equal(t, []string{"调度器原理"}, []string(lesson.Objectives))
	assert.Len(t, lesson.Content, 2)
}

func TestGenerateContent_MismatchedChain(t *testing.T) {
	db := setupTestDB(t)
	courseA := seedCourse(t, db, 1)
	courseB := seedCourse(t, db, 1)
	svc := newLessonService(t, db, validLessonJSON)

	// courseB 的模块不属于 courseA
	_, err := svc.GenerateContent(context.Background(), courseA.ID, courseB.Modules[0].ID, courseA.Modules[0].Lessons[0].ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrModuleNotFound))

	// courseB 的课时不属于 courseA 的模块
	_, err = svc.GenerateContent(context.Background(), courseA.ID, courseA.Modules[0].ID, courseB.Modules[0].Lessons[0].ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrLessonNotFound))
}

func TestGenerateContent_ProviderFailureLeavesStub(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	mod := course.Modules[0]

	generation := NewGenerationService(NewOrchestratorWithProviders(
		&stubProvider{name: "gemini", err: errors.New("quota exceeded")},
	))
	svc := NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewCourseRepository(db),
		generation,
		nil,
	)

	_, err := svc.GenerateContent(context.Background(), course.ID, mod.ID, mod.Lessons[0].ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrGenerationUnavailable))

	// 生成失败时课时保持桩状态
	lesson, err := svc.GetLesson(mod.Lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, lesson.IsEnriched)
	assert.Empty(t, lesson.Content)
}

func TestUpdateLesson_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	svc := newLessonService(t, db, validLessonJSON)
	lessonID := course.Modules[0].Lessons[0].ID

	title := "重命名后的课时"
	lesson, err := svc.UpdateLesson(context.Background(), lessonID, LessonUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, lesson.Title)
	assert.False(t, lesson.IsEnriched, "未提供的字段保持不变")
}

func TestUpdateLesson_RejectsInvalidBlocks(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	svc := newLessonService(t, db, validLessonJSON)
	lessonID := course.Modules[0].Lessons[0].ID

	bad := []model.ContentBlock{{Type: "carousel", Text: "nope"}}
	_, err := svc.UpdateLesson(context.Background(), lessonID, LessonUpdate{Content: &bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))

	// 拒绝更新后原内容不变
	lesson, err := svc.GetLesson(lessonID)
	require.NoError(t, err)
	assert.Empty(t, lesson.Content)
}

func TestToggleComplete_Involution(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	svc := newLessonService(t, db, validLessonJSON)
	lessonID := course.Modules[0].Lessons[0].ID

	completed, err := svc.ToggleComplete(5, lessonID)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = svc.ToggleComplete(5, lessonID)
	require.NoError(t, err)
	assert.False(t, completed)

	completed, err = svc.ToggleComplete(5, lessonID)
	require.NoError(t, err)
	assert.True(t, completed)

	ids, err := svc.CompletedLessons(5)
	require.NoError(t, err)
	assert.Equal(t, []uint{lessonID}, ids)
}

func TestToggleComplete_PerUser(t *testing.T) {
	db := setupTestDB(t)
	course := seedCourse(t, db, 1)
	svc := newLessonService(t, db, validLessonJSON)
	lessonID := course.Modules[0].Lessons[0].ID

	_, err := svc.ToggleComplete(1, lessonID)
	require.NoError(t, err)

	ids, err := svc.CompletedLessons(2)
	require.NoError(t, err)
	assert.Empty(t, ids, "完成标记按用户隔离")
}

func TestToggleComplete_MissingLesson(t *testing.T) {
	db := setupTestDB(t)
	svc := newLessonService(t, db, validLessonJSON)

	_, err := svc.ToggleComplete(1, 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrLessonNotFound))
}
