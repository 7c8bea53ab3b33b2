package db

import (
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/config"
)

// Database bundles the ORM handle with an sqlx view of the same connection pool.
type Database struct {
	Gorm *gorm.DB
	SQL  *sqlx.DB
}

func ConnectDB(conf *config.Config) (*Database, error) {
	if conf.DbDriver == config.DriverSQLite {
		return Open(sqlite.Open(conf.SqlitePath), "sqlite3")
	}

	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&charset=utf8mb4&loc=UTC"
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)

	// Parse up front so a malformed MYSQL_PARAMS fails before dialing.
	dsnConfig, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql dsn: %w", err)
	}

	return Open(mysql.New(mysql.Config{DSN: dsnConfig.FormatDSN(), DSNConfig: dsnConfig}), "mysql")
}

// Open connects through dialector, migrates the schema and wraps the pool for
// sqlx. driverName selects the sqlx bind variable style.
func Open(dialector gorm.Dialector, driverName string) (*Database, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := gormDB.AutoMigrate(&userModel{}, &taskModel{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}

	return &Database{Gorm: gormDB, SQL: sqlx.NewDb(sqlDB, driverName)}, nil
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

type zapGormWriter struct{}

func (zapGormWriter) Printf(format string, args ...interface{}) {
	zap.L().Sugar().Warnf(format, args...)
}

func newGormLogger() logger.Interface {
	return logger.New(zapGormWriter{}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
