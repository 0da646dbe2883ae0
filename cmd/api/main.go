package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/docmerge-svc/docmerge-backend/config"
	"github.com/docmerge-svc/docmerge-backend/internal/bootstrap"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/convert"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
	}

	formats := convert.DefaultFormats()
	if cfg.Unoconv.FormatsFile != "" {
		formats, err = convert.LoadFormats(cfg.Unoconv.FormatsFile)
		if err != nil {
			log.Fatalf("formats: %v", err)
		}
	}

	var converter convert.Converter
	if cfg.Unoconv.Local {
		converter = convert.NewLocal(cfg.Unoconv.PythonPath, cfg.Unoconv.Path, formats)
	} else {
		converter = convert.NewRemote(cfg.Unoconv.URL, formats)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "docmerge-backend",
		Version:        cfg.App.Version,
		DB:             db,
		Redis:          redisClient,
		Converter:      converter,
		RestrictGroups: cfg.App.GroupAccessOnly,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
