package repository

import (
	"errors"

	"text2learn_backend/internal/model"
	"text2learn_backend/internal/util"
	"text2learn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CreateWithStructure 在单个事务中按大纲顺序持久化课程、模块与课时桩。
// 模块与课时的 OrderIndex 均取自大纲中的位置，保证连续且唯一。
func (r *CourseRepository) CreateWithStructure(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		modules := course.Modules
		course.Modules = nil

		if err := tx.Create(course).Error; err != nil {
			return err
		}

		for i := range modules {
			mod := &modules[i]
			lessons := mod.Lessons
			mod.Lessons = nil
			mod.CourseID = course.ID
			mod.OrderIndex = i

			if err := tx.Create(mod).Error; err != nil {
				return err
			}

			for j := range lessons {
				lessons[j].ModuleID = mod.ID
				lessons[j].OrderIndex = j
			}
			if len(lessons) > 0 {
				if err := tx.Create(&lessons).Error; err != nil {
					return err
				}
			}
			mod.Lessons = lessons
		}

		course.Modules = modules
		return nil
	})
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDPopulated 返回带完整模块/课时层级的课程，按存储顺序排列。
// 嵌套加载失败时降级：记录日志并返回未填充的课程本体，
// 防止个别脏数据拖垮整个请求。
func (r *CourseRepository) FindByIDPopulated(id uint) (*model.Course, error) {
	course, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := r.populate(course); err != nil {
		logger.Log.Error("Failed to populate course, returning unpopulated data",
			zap.Uint("courseID", course.ID), zap.Error(err))
		course.Modules = nil
	}

	return course, nil
}

// FindByCreator 返回用户创建的课程，最新在前
func (r *CourseRepository) FindByCreator(userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("creator_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	r.populateAll(courses)
	return courses, nil
}

// FindSaved 返回用户收藏的课程，最新在前
func (r *CourseRepository) FindSaved(userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN course_saves ON course_saves.course_id = courses.id").
		Where("course_saves.user_id = ?", userID).
		Order("courses.created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	r.populateAll(courses)
	return courses, nil
}

func (r *CourseRepository) populateAll(courses []model.Course) {
	for i := range courses {
		if err := r.populate(&courses[i]); err != nil {
			logger.Log.Error("Failed to populate course in list, returning unpopulated data",
				zap.Uint("courseID", courses[i].ID), zap.Error(err))
			courses[i].Modules = nil
		}
	}
}

func (r *CourseRepository) populate(course *model.Course) error {
	var modules []model.CourseModule
	if err := r.DB.Where("course_id = ?", course.ID).
		Order("order_index ASC").
		Find(&modules).Error; err != nil {
		return err
	}

	for i := range modules {
		var lessons []model.Lesson
		if err := r.DB.Where("module_id = ?", modules[i].ID).
			Order("order_index ASC").
			Find(&lessons).Error; err != nil {
			return err
		}
		modules[i].Lessons = lessons
	}

	course.Modules = modules
	return nil
}

// Delete 级联删除课程及其全部模块与课时
func (r *CourseRepository) Delete(courseID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&model.CourseModule{}).
			Where("course_id = ?", courseID).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).
				Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).
				Delete(&model.CourseModule{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", courseID).
			Delete(&model.CourseSave{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, courseID).Error
	})
}

// Save 收藏课程，重复收藏为幂等操作
func (r *CourseRepository) Save(userID, courseID uint) error {
	var save model.CourseSave
	return r.DB.
		Where(model.CourseSave{UserID: userID, CourseID: courseID}).
		FirstOrCreate(&save).Error
}

// Unsave 取消收藏，未收藏时为空操作
func (r *CourseRepository) Unsave(userID, courseID uint) error {
	return r.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.CourseSave{}).Error
}

func (r *CourseRepository) FindModuleByID(id uint) (*model.CourseModule, error) {
	var mod model.CourseModule
	err := r.DB.First(&mod, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mod, nil
}
