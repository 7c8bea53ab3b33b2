//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"

	authadapter "taskboard/internal/adapter/auth"
	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	appservice "taskboard/internal/app/service"
	"taskboard/pkg/translator"
)

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	Database   *dbadapter.Database
	testDBName string
	Router     *gin.Engine
}

func (s *IntegrationSuiteBase) SetupSuite() {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{})

	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "taskboard")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&charset=utf8mb4&loc=UTC")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(rootUser, rootPassword, host, port, "", params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)
	s.testDBName = database

	db, err := dbadapter.Open(mysql.Open(mysqlDSN(rootUser, rootPassword, host, port, database, params)), "mysql")
	s.Require().NoError(err)
	s.Database = db
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.Database != nil {
		s.Require().NoError(s.Database.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

// ResetDatabase empties both tables and rebuilds the router on top of them.
func (s *IntegrationSuiteBase) ResetDatabase() {
	_, err := s.Database.SQL.Exec("DELETE FROM tasks")
	s.Require().NoError(err)
	_, err = s.Database.SQL.Exec("DELETE FROM users")
	s.Require().NoError(err)

	authService := appservice.NewAuthService(
		dbadapter.NewUserRepository(s.Database.Gorm),
		authadapter.NewPasswordHasher(bcrypt.MinCost),
		authadapter.NewJWTManager("integration-secret", time.Hour),
	)
	taskService := appservice.NewTaskService(
		dbadapter.NewTaskRepository(s.Database.Gorm),
		dbadapter.NewTaskStatisticsRepository(s.Database.SQL),
		time.Now,
	)

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(s.Database.SQL),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(taskService, time.Now),
	}, authService)
	s.Router = router
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
