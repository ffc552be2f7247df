package locker

import (
	"context"
	"errors"
	"kiskibreak-service/internal/app/contracts"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error) {
	args := m.Called(ctx, key, exp)
	return args.Int(0), args.Error(1)
}

func (m *MockRedisRepository) Publish(ctx context.Context, channel string, payload interface{}) error {
	args := m.Called(ctx, channel, payload)
	return args.Error(0)
}

func (m *MockRedisRepository) Subscribe(ctx context.Context, channel string) (contracts.Subscription, error) {
	args := m.Called(ctx, channel)
	sub, _ := args.Get(0).(contracts.Subscription)
	return sub, args.Error(1)
}

const lockKey = "kiskibreak:test:leader"

func TestLockService_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("acquired returns the owner token", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, lockKey, mock.AnythingOfType("string"), 30*time.Second).Return(true, nil)

		locker := NewLockService(repo, zap.NewNop())
		acquired, value, err := locker.TryLock(ctx, lockKey, 30*time.Second)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)
		repo.AssertExpectations(t)
	})

	t.Run("held by someone else", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, lockKey, mock.Anything, time.Second).Return(false, nil)

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, lockKey, time.Second)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("redis failure", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, lockKey, mock.Anything, time.Second).Return(false, errors.New("connection refused"))

		acquired, _, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, lockKey, time.Second)

		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes the key", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-1"`, nil)
		repo.On("Delete", ctx, lockKey).Return(nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, lockKey, "token-1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing lock is a no-op", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return("", nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, lockKey, "token-1")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("foreign owner is rejected", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-2"`, nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, lockKey, "token-1")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLockService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("owner extends ttl", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-1"`, nil)
		repo.On("Expire", ctx, lockKey, 30*time.Second).Return(true, nil)

		err := NewLockService(repo, zap.NewNop()).Refresh(ctx, lockKey, "token-1", 30*time.Second)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("expired lock cannot be refreshed", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return("", nil)

		err := NewLockService(repo, zap.NewNop()).Refresh(ctx, lockKey, "token-1", 30*time.Second)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("key vanished between get and expire", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, lockKey).Return(`"token-1"`, nil)
		repo.On("Expire", ctx, lockKey, time.Second).Return(false, nil)

		err := NewLockService(repo, zap.NewNop()).Refresh(ctx, lockKey, "token-1", time.Second)

		assert.Error(t, err)
	})
}
