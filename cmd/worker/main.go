package main

import (
	"AssetVault/config"
	"AssetVault/internal/repo"
	"AssetVault/internal/storage"
	"AssetVault/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("purge worker started")
	if err := worker.RunPurgeWorker(ctx); err != nil {
		log.Fatalf("purge worker stopped: %v", err)
	}
}
