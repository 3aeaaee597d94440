package database

import (
	"icsq_backend/internal/config"
	"icsq_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.Category{},
		&model.DepartmentMapping{},
		&model.Survey{},
		&model.SurveyResponse{},
		&model.ActionPlan{},
		&model.ActionPlanAssignee{},
		&model.ActionPlanRespondent{},
		&model.SipocDocument{},
		&model.ActivityLog{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认调查类别（空库时初始化，名称已按写入口径规范化为小写）
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []model.Category{
			{Name: "quality of service", Description: "Accuracy and completeness of delivered work"},
			{Name: "communication", Description: "Clarity and timeliness of updates"},
			{Name: "timeliness", Description: "Meeting agreed turnaround times"},
			{Name: "support", Description: "Responsiveness to requests and escalations"},
			{Name: "process adherence", Description: "Following agreed interdepartmental processes"},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	return db, nil
}
