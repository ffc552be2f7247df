package main

import (
	"context"
	"kiskibreak-service/internal/app/config"
	"kiskibreak-service/internal/app/delivery/http/controllers"
	"kiskibreak-service/internal/app/delivery/http/middlewares"
	"kiskibreak-service/internal/app/delivery/http/routers"
	"kiskibreak-service/internal/app/drivers/database"
	"kiskibreak-service/internal/app/drivers/logger"
	"kiskibreak-service/internal/app/drivers/messaging"
	"kiskibreak-service/internal/app/drivers/storage"
	"kiskibreak-service/internal/app/services/core/availability"
	"kiskibreak-service/internal/app/services/core/friends"
	"kiskibreak-service/internal/app/services/core/groups"
	"kiskibreak-service/internal/app/services/core/notifications"
	"kiskibreak-service/internal/app/services/core/rooms"
	"kiskibreak-service/internal/app/services/core/slot"
	"kiskibreak-service/internal/app/services/core/timetables"
	"kiskibreak-service/internal/app/services/core/users"
	"kiskibreak-service/internal/app/services/shared/eventbus"
	"kiskibreak-service/internal/app/services/shared/jwtmanager"
	"kiskibreak-service/internal/app/services/shared/locker"
	"kiskibreak-service/internal/app/services/shared/pushnotification"
	"kiskibreak-service/internal/app/services/shared/ratelimiter"
	"kiskibreak-service/internal/app/services/shared/redis"
	objectStorage "kiskibreak-service/internal/app/services/shared/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	if err := bootstrapingTheApp(bootstrap, server, location); err != nil {
		log.Fatalf("Error bootstrapping the app: %v", err)
	}

	go func() {
		zapLogger.Info("Server started",
			zap.String("port", internalConfig.App.Port),
			zap.String("version", Version),
			zap.String("tag", Tag),
			zap.String("timezone", location.String()),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error closing connections: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, server *http.Server, location *time.Location) error {
	cfg := bootstrap.InternalConfig
	dbName := cfg.MongoDB.DBName
	runCtx, stopRun := context.WithCancel(context.Background())

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	actionLimiter := ratelimiter.NewUserActionLimiter(redisRepository, bootstrap.Logger)
	eventBus := eventbus.NewScheduleEventBus(redisRepository, bootstrap.Logger)
	go eventBus.Run(runCtx)

	// Identity
	jwtManager, err := jwtmanager.NewJWTManager(cfg, bootstrap.Logger)
	if err != nil {
		stopRun()
		return err
	}

	// Minio
	minioStorage := objectStorage.NewMinioStorage(bootstrap.Minio, cfg.Minio.BucketName, bootstrap.Logger)

	// RabbitMQ
	pushPublisher, err := pushnotification.NewPushPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.PushQueue, bootstrap.Logger)
	if err != nil {
		stopRun()
		return err
	}

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	friendRepository := friends.NewFriendMongoRepository(bootstrap.MongoDB, dbName)
	groupRepository := groups.NewGroupMongoRepository(bootstrap.MongoDB, dbName)
	timetableRepository := timetables.NewTimetableMongoRepository(bootstrap.MongoDB, dbName)

	// Usecases
	scanner := availability.NewScanner(timetableRepository, cfg.App.ScanConcurrency, location, bootstrap.Logger)
	notificationUsecase := notifications.NewNotificationUsecase(friendRepository, userRepository, pushPublisher, bootstrap.Logger)
	timetableUsecase := timetables.NewTimetableUsecase(
		timetableRepository,
		friendRepository,
		userRepository,
		minioStorage,
		eventBus,
		notificationUsecase,
		cfg,
		location,
		bootstrap.Logger,
	)
	availabilityUsecase := availability.NewAvailabilityUsecase(
		friendRepository,
		groupRepository,
		userRepository,
		scanner,
		eventBus,
		cfg,
		location,
		bootstrap.Logger,
	)
	slotUsecase := slot.NewSlotUsecase(timetableRepository, location, bootstrap.Logger)
	roomUsecase, err := rooms.NewRoomUsecase(runCtx, minioStorage, cfg, location, bootstrap.Logger)
	if err != nil {
		stopRun()
		return err
	}

	// Slot ticker
	if cfg.SlotTicker.Enabled {
		worker := slot.NewWorker(bootstrap.Logger, cfg, lockerService, eventBus, location)
		if err := worker.Start(runCtx); err != nil {
			stopRun()
			return err
		}
		bootstrap.SlotWorkerStop = worker.Stop
	}

	bootstrap.WorkerStop = func() {
		stopRun()
		timetableUsecase.Wait()
	}

	// Controllers
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, availabilityUsecase)
	server.RegisterOnShutdown(availabilityController.Close)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares.NewMiddlewares(bootstrap.Logger, cfg, jwtManager, actionLimiter),
		controllers.NewHealthController(Version, Tag),
		controllers.NewSlotController(bootstrap.Logger, slotUsecase),
		controllers.NewTimetableController(bootstrap.Logger, timetableUsecase),
		availabilityController,
		controllers.NewRoomController(bootstrap.Logger, roomUsecase),
	)
	return nil
}
