package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/ValkaFea/cinema-booking-bot/internal/config"
	"github.com/ValkaFea/cinema-booking-bot/internal/db"
	"github.com/ValkaFea/cinema-booking-bot/internal/model"
)

func main() {
	// .env рядом с бинарём — для локального запуска; в проде
	// переменные приходят из окружения процесса.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using process environment")
	}

	// 1. Загружаем конфиг БД из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 4. Стартовое расписание (идемпотентно).
	if err := model.SeedScreenings(gormDB); err != nil {
		log.Fatalf("seed screenings: %v", err)
	}

	log.Printf("database ready (driver=%s)", dbCfg.Driver)
}
