package infrastructure

import (
	"fmt"

	"Cashline/config"
	"Cashline/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if cfg.Log.Level == "debug" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.DBName).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite em memória existe apenas dentro de uma conexão
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = cfg.PostgresDSN()
		}
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("driver %q não usa banco relacional", cfg.Driver)
	}
}

func RunMigrations(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []struct {
		name  string
		model interface{}
	}{
		{"Transaction", &transactionDB{}},
		{"Budget", &budgetDB{}},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity.model); err != nil {
			logger.Error().
				Err(err).
				Str("entity", entity.name).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}
