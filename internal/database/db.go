package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iliyamo/plant-catalog/internal/config"
	"github.com/iliyamo/plant-catalog/internal/model"
)

// Open connects to the configured database through gorm and verifies the
// connection.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Pool settings
	if cfg.Driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY on the shared file
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate creates or updates the plants table to match model.Plant.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Plant{}); err != nil {
		return fmt.Errorf("migrate plants: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return sqlite.Open(cfg.Path), nil
	case "mysql":
		return mysql.Open(mysqlDSN(cfg)), nil
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	}
	return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
}

// mysqlDSN builds the driver DSN.  ParseTime and UTC keep DATETIME columns
// consistent should the table grow timestamps.
func mysqlDSN(cfg config.DBConfig) string {
	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func postgresDSN(cfg config.DBConfig) string {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	return fmt.Sprintf("postgres://%s@%s/%s?sslmode=disable",
		auth, net.JoinHostPort(cfg.Host, cfg.Port), cfg.Name)
}
