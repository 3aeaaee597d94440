// 初始化管理员账号脚本
//
// 首次部署时运行一次，创建平台管理员。账号已存在时直接退出，可重复执行。
//
// 用法: go run scripts/bootstrap_admin.go -email admin@example.com -password <密码>

package main

import (
	"flag"
	"log"
	"os"

	"icsq_backend/internal/config"
	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/pkg/database"
	"icsq_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "管理员初始密码")
	name := flag.String("name", "Administrator", "管理员显示名")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("用法: go run scripts/bootstrap_admin.go -email <邮箱> -password <密码>")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(*email); err == nil {
		log.Printf("账号 %s 已存在，无需创建", *email)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("查询账号失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	admin := &model.User{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("管理员 %s 创建成功 (id=%d)", *email, admin.ID)
}
