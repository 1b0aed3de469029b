package database

import (
	"fmt"
	"log"

	"medexam_backend/internal/config"
	"medexam_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the MySQL connection and, when migrate is set, runs the schema
// migration and seeds the bootstrap rows. Release deployments migrate only
// when asked to via the -migrate flag.
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
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Question{},
			&model.ExamSession{},
			&model.ExamAnswer{},
			&model.QuizProgress{},
			&model.Notification{},
			&model.NotificationRead{},
			&model.RankingScore{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		seedDefaults(db)
	}

	return db, nil
}

// seedDefaults inserts the bootstrap admin account and a welcome notification
// on an empty database.
func seedDefaults(db *gorm.DB) {
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			db.Create(&model.User{
				Name:     "Administrador",
				Email:    "admin@medexam.local",
				Password: string(hash),
				Role:     model.Admin,
			})
			log.Println("Seeded default admin user (admin@medexam.local), change the password")
		}
	}

	var noticeCount int64
	db.Model(&model.Notification{}).Count(&noticeCount)
	if noticeCount == 0 {
		db.Create(&model.Notification{
			Title:     "Bem-vindo!",
			Body:      "Seu ambiente de estudos está pronto. Bons estudos!",
			Icon:      "bell",
			IconColor: "blue",
		})
	}
}
