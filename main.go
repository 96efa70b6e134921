package main

import (
	"AssetVault/config"
	"AssetVault/internal/repo"
	"AssetVault/internal/storage"
	"AssetVault/router"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	router := router.InitRouter()

	router.Run(":8000")
}
