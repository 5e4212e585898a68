package repository

import (
	"errors"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/util"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// ToggleCompletion 翻转用户对课时的完成标记，返回翻转后的状态。
// 连续调用两次回到原状态。
func (r *LessonRepository) ToggleCompletion(userID, lessonID uint) (bool, error) {
	completed := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.LessonCompletion
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&existing).Error

		switch {
		case err == nil:
			// 已完成 → 取消标记
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			completed = true
			return tx.Create(&model.LessonCompletion{
				UserID:   userID,
				LessonID: lessonID,
			}).Error
		default:
			return err
		}
	})
	return completed, err
}

// CompletedLessonIDs 返回用户已完成的课时ID列表
func (r *LessonRepository) CompletedLessonIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ?", userID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}
