// Package dao implements the data access layer.
package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/model"
	"github.com/ankibridge/ankibridge-service/pkg/fileurl"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig database settings handed down from the app config.
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao wraps the database handle shared by all repositories.
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Option configures a Dao.
type Option func(*Dao)

// WithLogger injects the zap logger.
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New creates the Dao.
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB returns the handle bound to the request context.
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return d.db
	}
	return d.db.WithContext(ctx)
}

func dialector(c DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	}
	if !fileurl.IsExist(c.Path) {
		_ = fileurl.CreatePath(c.Path, os.ModePerm)
	}
	return sqlite.Open(c.Path)
}

// NewDBEngineWithConfig opens the collection database and applies pool
// settings and migrations.
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(c), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(d)
	} else {
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db, ""); err != nil {
			return nil, err
		}
	}

	if lg != nil {
		lg.Info("database opened", zap.String("type", c.Type), zap.String("path", c.Path))
	}

	return db, nil
}
