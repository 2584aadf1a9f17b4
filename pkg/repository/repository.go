package repository

import (
	"context"

	"github.com/techcare/core/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIdentifier(ctx context.Context, emailOrPhone string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email, phone string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error)
}

type RequestRepo interface {
	CreateRequest(ctx context.Context, r *models.ServiceRequest) (int64, error)
	GetRequest(ctx context.Context, id int64) (*models.ServiceRequest, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.ServiceRequest, error)
	ListAll(ctx context.Context) ([]models.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status, technicianName, notes *string) (bool, error)
	DeleteRequest(ctx context.Context, id int64) (bool, error)
}

// KVStore is the durable key-value namespace backing the ambient session.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}
