package main

import (
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/drivers/database"
	"kiskibreak-service/internal/app/drivers/logger"
	"log"
	"time"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer client.Disconnect(ctx)

	if err := database.EnsureIndexes(ctx, client, internalConfig.MongoDB.DBName, zapLogger); err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Println("Applied mongo indexes!")
}
