package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// DefaultPath is used when no database path is configured.
const DefaultPath = "folio.db"

// Models lists every table the application migrates.
func Models() []any {
	return []any{
		&User{},
		&RevealStatistic{},
		&RevealVisit{},
		&HourlyPageView{},
		&HourlyVisitor{},
	}
}

// Init 初始化数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 folio.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = DefaultPath
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Close releases the global connection.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
