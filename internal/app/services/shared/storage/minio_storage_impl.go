package storage

import (
	"bytes"
	"context"
	"kiskibreak-service/internal/app/contracts"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"
	"kiskibreak-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const minioNoSuchKey = "NoSuchKey"

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.ObjectStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

func (m *minioStorage) PutJSON(ctx context.Context, objectName string, value interface{}) error {
	requestID := utils.RequestIDFromContext(ctx)
	m.Log.Debug("minioStorage.PutJSON called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, m.BucketName),
		zap.String(constvars.LoggingObjectKey, objectName),
	)

	body, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return nil
}

func (m *minioStorage) GetJSON(ctx context.Context, objectName string, dest interface{}) (bool, error) {
	requestID := utils.RequestIDFromContext(ctx)
	m.Log.Debug("minioStorage.GetJSON called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, m.BucketName),
		zap.String(constvars.LoggingObjectKey, objectName),
	)

	object, err := m.MinioClient.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return false, exceptions.ErrMinioGetObject(err, m.BucketName)
	}
	defer object.Close()

	// GetObject is lazy; Stat is the first call that reaches the server.
	if _, err := object.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == minioNoSuchKey {
			return false, nil
		}
		return false, exceptions.ErrMinioGetObject(err, m.BucketName)
	}

	if err := json.NewDecoder(object).Decode(dest); err != nil {
		return true, exceptions.ErrCannotParseJSON(err)
	}
	return true, nil
}
