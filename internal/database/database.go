package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/config"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
)

// Conn is a lazily-established gorm connection. The first caller dials and
// migrates; until the store is reachable every attempt returns the dial
// error and the process keeps serving (readiness reports the outage,
// liveness is unaffected).
type Conn struct {
	cfg    config.Database
	logger *zap.Logger

	mu sync.Mutex
	db *gorm.DB
}

func NewConn(cfg *config.Config, logger *zap.Logger) *Conn {
	return &Conn{cfg: cfg.Database, logger: logger}
}

func (c *Conn) DB(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	db, err := c.open(ctx)
	if err != nil {
		c.logger.Error("Failed to connect to database",
			zap.Error(err),
			zap.String("driver", c.cfg.Driver))
		return nil, err
	}

	if err := db.WithContext(ctx).AutoMigrate(&model.Message{}); err != nil {
		c.logger.Error("Failed to migrate messages table", zap.Error(err))
		return nil, fmt.Errorf("migrate messages table: %w", err)
	}

	c.logger.Info("Successfully connected to database",
		zap.String("driver", c.cfg.Driver))

	c.db = db
	return c.db, nil
}

func (c *Conn) Ping(ctx context.Context) error {
	db, err := c.DB(ctx)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (c *Conn) open(ctx context.Context) (*gorm.DB, error) {
	gl := gormLogger.New(&zapWriter{logger: c.logger},
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})

	var dialector gorm.Dialector
	switch c.cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(c.cfg.Path)
	default:
		dialector = mysql.Open(buildDSN(c.cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gl})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if c.cfg.Driver != "sqlite" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

func buildDSN(cfg config.Database) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

type zapWriter struct {
	logger *zap.Logger
}

func (z *zapWriter) Printf(format string, args ...interface{}) {
	z.logger.Info(fmt.Sprintf(format, args...))
}
