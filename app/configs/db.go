package configs

import (
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	dbMaxRetries = 10
	dbRetryDelay = 5 * time.Second
)

func (e ENV) DSN() string {
	if e.DatabaseURL != "" {
		return e.DatabaseURL
	}
	cfg := gomysql.NewConfig()
	cfg.User = e.DBUser
	cfg.Passwd = e.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = e.DBHost + ":" + e.DBPort
	cfg.DBName = e.DBName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// OpenConnection opens the MySQL pool, retrying while the database comes up.
func OpenConnection(env ENV, logger zerolog.Logger) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Warn
	if env.IsProduction() {
		gormLogLevel = gormlogger.Error
	}

	if _, err := gomysql.ParseDSN(env.DSN()); err != nil {
		return nil, fmt.Errorf("invalid database DSN: %w", err)
	}

	var lastErr error
	for i := 0; i < dbMaxRetries; i++ {
		logger.Info().Int("attempt", i+1).Int("max", dbMaxRetries).Str("host", env.DBHost).Msg("connecting to database")
		db, err := gorm.Open(mysql.Open(env.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormLogLevel),
		})
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					logger.Info().Msg("database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			logger.Warn().Err(pingErr).Dur("retry_in", dbRetryDelay).Msg("failed to ping database")
		} else {
			lastErr = err
			logger.Warn().Err(err).Dur("retry_in", dbRetryDelay).Msg("failed to open gorm connection")
		}

		time.Sleep(dbRetryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", dbMaxRetries, lastErr)
}

func CloseConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
