package services

import (
	"errors"
	"net/http"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theramind/journal_api/model"
	"github.com/theramind/journal_api/shared"
)

type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const SQLITE_SVC = "sqlite_svc"

// Id returns Service ID
func (ds SqliteService) Id() string {
	return SQLITE_SVC
}

// Db Access to raw SqliteService db
func (ds SqliteService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DB_DATABASE")
	if ds.database == "" {
		ds.database = "journal.db"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	if err = ds.db.AutoMigrate(&model.User{}); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
}

// HandleError maps gorm errors onto the shared AppError taxonomy.
func (ds *SqliteService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &shared.AppError{StatusCode: http.StatusNotFound, Message: "Not Found", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &shared.AppError{StatusCode: http.StatusConflict, Message: "Conflict", Err: err}
	default:
		log.WithError(err).Error("Database error occurred")
		return shared.NewInternalError(err)
	}
}
