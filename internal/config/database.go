package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared connection for the database storage mode
var DB *gorm.DB

// OpenDB connects with the gorm dialector for driver.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

// InitDB connects to MySQL or PostgreSQL according to cfg
func InitDB(cfg *Config) {
	var err error
	DB, err = OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	Logger.Info("Database connected", zap.String("driver", cfg.DBDriver))
}
