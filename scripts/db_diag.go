// 数据库连通性诊断脚本
//
// 检查课程层级数据是否完整：统计各表行数，并抽取最新课程做一次
// 完整的层级加载，验证模块/课时的外键与顺序字段。
//
// 用法: go run scripts/db_diag.go
package main

import (
	"log"

	"text2learn_backend/internal/config"
	"text2learn_backend/internal/model"
	"text2learn_backend/internal/repository"
	"text2learn_backend/pkg/database"
	"text2learn_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var courses, modules, lessons, saves, completions int64
	db.Model(&model.Course{}).Count(&courses)
	db.Model(&model.CourseModule{}).Count(&modules)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.CourseSave{}).Count(&saves)
	db.Model(&model.LessonCompletion{}).Count(&completions)

	log.Printf("courses=%d modules=%d lessons=%d saves=%d completions=%d",
		courses, modules, lessons, saves, completions)

	if courses == 0 {
		log.Println("没有课程数据，跳过层级检查")
		return
	}

	var latest model.Course
	if err := db.Order("created_at DESC").First(&latest).Error; err != nil {
		log.Fatalf("读取最新课程失败: %v", err)
	}

	repo := repository.NewCourseRepository(db)
	populated, err := repo.FindByIDPopulated(latest.ID)
	if err != nil {
		log.Fatalf("课程层级加载失败: %v", err)
	}

	log.Printf("课程 %d (%s): %d 个模块", populated.ID, populated.Title, len(populated.Modules))
	for _, mod := range populated.Modules {
		enriched := 0
		for _, lesson := range mod.Lessons {
			if lesson.IsEnriched {
				enriched++
			}
		}
		log.Printf("  模块 %d [order=%d] %s: %d 课时 (%d 已生成内容)",
			mod.ID, mod.OrderIndex, mod.Title, len(mod.Lessons), enriched)
	}
}
