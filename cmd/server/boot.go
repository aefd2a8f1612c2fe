package main

import (
	"fmt"

	"github.com/nikhilmekle/mern-ecommerce-app/app/jobs"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/config"
	"github.com/nikhilmekle/mern-ecommerce-app/database/migrations"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/cache"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/database"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/queue"
	"gorm.io/gorm"
)

// boot loads config, connects the database, migrates, and wires the queue.
// Redis and the Mongo log sink are optional: their absence is logged and
// the app runs degraded.
func boot() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if uri := config.MongoLogURI(); uri != "" {
		if _, err := logger.EnableMongoSink(uri); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
	}

	db, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		return nil, err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	queue.UseDB(db)
	jobs.Configure(repositories.NewOrderRepository(db))

	return db, nil
}
