package main

import (
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/drivers/logger"
	"kiskibreak-service/internal/app/drivers/storage"
	objectStorage "kiskibreak-service/internal/app/services/shared/storage"
	"kiskibreak-service/internal/pkg/rooms"
	"log"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	file := pflag.StringP("file", "f", "", "room occupancy export (JSON) produced by the timetable parser")
	object := pflag.String("object", "", "object name to write, defaults to MINIO_ROOMS_OBJECT")
	dryRun := pflag.Bool("dry-run", false, "validate only, do not upload")
	pflag.Parse()

	if *file == "" {
		pflag.Usage()
		os.Exit(2)
	}

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	export, err := loadExport(*file)
	if err != nil {
		log.Fatalf("Error reading export %s: %v", *file, err)
	}

	directory, err := rooms.NewDirectory(*export)
	if err != nil {
		log.Fatalf("Invalid export %s: %v", *file, err)
	}
	zapLogger.Info("Room export validated",
		zap.String("file", *file),
		zap.Int("room_count", directory.Len()),
	)
	if *dryRun {
		return
	}

	objectName := *object
	if objectName == "" {
		objectName = internalConfig.Minio.RoomsObject
	}

	client := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	store := objectStorage.NewMinioStorage(client, internalConfig.Minio.BucketName, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.PutJSON(ctx, objectName, directory.Export()); err != nil {
		log.Fatalf("Error uploading export: %v", err)
	}

	log.Printf("Uploaded %d rooms to %s/%s\n", directory.Len(), internalConfig.Minio.BucketName, objectName)
}

func loadExport(path string) (*rooms.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	export := new(rooms.Export)
	if err := json.NewDecoder(f).Decode(export); err != nil {
		return nil, err
	}
	return export, nil
}
