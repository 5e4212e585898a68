package model

import (
	"time"

	"gorm.io/datatypes"
)

// Course AI 生成的课程，模块顺序即大纲顺序
// swagger:model Course
type Course struct {
	BaseModel
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	CreatorID   uint                        `gorm:"index;not null" json:"creatorId"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsPublished bool                        `gorm:"default:false" json:"isPublished"`
	Modules     []CourseModule              `gorm:"foreignKey:CourseID" json:"modules"`
	SavedBy     []CourseSave                `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程内的模块。OrderIndex 在课程内唯一且连续，
// 因为存储顺序不保证等于查询顺序。
// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	Title      string   `gorm:"size:255;not null" json:"title"`
	CourseID   uint     `gorm:"index;not null" json:"courseId"`
	OrderIndex int      `gorm:"not null;default:0" json:"orderIndex"`
	Lessons    []Lesson `gorm:"foreignKey:ModuleID" json:"lessons"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// Lesson 模块内的课时。新建时为桩状态：Content 为空、IsEnriched=false，
// 直到课时内容生成成功才被填充。
// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title        string                            `gorm:"size:255;not null" json:"title"`
	ModuleID     uint                              `gorm:"index;not null" json:"moduleId"`
	OrderIndex   int                               `gorm:"not null;default:0" json:"orderIndex"`
	Objectives   datatypes.JSONSlice[string]       `json:"objectives"`
	Content      datatypes.JSONSlice[ContentBlock] `json:"content"`
	IsEnriched   bool                              `gorm:"default:false" json:"isEnriched"`
	HinglishText string                            `gorm:"type:text" json:"hinglishText"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// CourseSave 收藏关系，弱引用，不承载所有权。
// 硬删除：软删除会让唯一索引在重新收藏时冲突。
type CourseSave struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_course_saves_user_course;not null" json:"userId"`
	CourseID  uint      `gorm:"uniqueIndex:idx_course_saves_user_course;not null" json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CourseSave) TableName() string {
	return "course_saves"
}

// LessonCompletion 用户的课时完成标记，同样硬删除
type LessonCompletion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_lesson_completions_user_lesson;not null" json:"userId"`
	LessonID  uint      `gorm:"uniqueIndex:idx_lesson_completions_user_lesson;not null" json:"lessonId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
