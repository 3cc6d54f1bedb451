package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "DemoPass1"
)

// Seeds a demo user with one board and a few tasks across the three
// conventional columns. Safe to run repeatedly.
func main() {
	log.Info("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err == gorm.ErrRecordNotFound {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if hashErr != nil {
			log.Fatalf("hash password: %v", hashErr)
		}
		user = &model.User{Email: demoEmail, PasswordHash: string(hash)}
		err := userRepo.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, profiles repository.ProfileRepository) error {
			if err := users.Create(ctx, user); err != nil {
				return err
			}
			return profiles.Create(ctx, &model.Profile{UserID: user.ID, Name: "Demo User"})
		})
		if err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		log.WithField("email", demoEmail).Info("created demo user")
	} else if err != nil {
		log.Fatalf("lookup demo user: %v", err)
	} else {
		log.WithField("email", demoEmail).Info("demo user already exists, skipping")
		return
	}

	board := &model.Board{
		Name:        "Getting Started",
		Description: "A sample board seeded for local development",
		UserID:      user.ID,
		CreatedAt:   time.Now(),
	}
	if err := boardRepo.Create(ctx, board); err != nil {
		log.Fatalf("create demo board: %v", err)
	}

	tasks := []model.Task{
		{Title: "Explore the board", Status: model.StatusTodo},
		{Title: "Drag a card to In Progress", Status: model.StatusInProgress},
		{Title: "Read the API docs at /swagger", Status: model.StatusDone, IsCompleted: true},
	}
	for i := range tasks {
		tasks[i].BoardID = board.ID
		tasks[i].UserID = user.ID
		tasks[i].CreatedAt = time.Now()
		if err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			log.Fatalf("create demo task: %v", err)
		}
	}

	log.WithField("board_id", board.ID).Infof("seeded demo board with %d tasks", len(tasks))
}
