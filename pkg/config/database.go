package config

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the open store and the connection behind it. Exactly one of
// Gorm and Mongo is set.
type DB struct {
	Store *repositories.Store
	Gorm  *gorm.DB
	Mongo *mongo.Client
}

// InitDB opens the store selected by cfg.StoreDriver, verifies the
// connection and prepares the schema.
func InitDB(ctx context.Context, cfg *Config) (*DB, error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		client, err := initMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		store, err := repositories.NewMongoStore(ctx, client.Database(cfg.MongoDatabase))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &DB{Store: store, Mongo: client}, nil

	case DriverPostgres, DriverSQLite:
		db, err := initGorm(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.StoreDriver, err)
		}
		store, err := repositories.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("GORM auto-migrations completed.")
		return &DB{Store: store, Gorm: db}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func initGorm(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.StoreDriver == DriverPostgres {
		dialector = postgres.Open(cfg.PostgresURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.StoreDriver).Msg("Successfully connected to SQL store!")
	return db, nil
}

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Msg("Successfully connected to MongoDB!")
	return client, nil
}

// Ping checks that the store still answers.
func (db *DB) Ping(ctx context.Context) error {
	if db.Mongo != nil {
		return db.Mongo.Ping(ctx, readpref.Primary())
	}
	if db.Gorm != nil {
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	return fmt.Errorf("no store open")
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Gorm != nil {
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			log.Error().Err(err).Msg("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing SQL connection")
		} else {
			log.Info().Msg("SQL connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("Error closing MongoDB connection")
		} else {
			log.Info().Msg("MongoDB connection closed.")
		}
	}
}
