package repository

import (
	"context"
	"errors"

	"taskmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when a user has no password credential.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository stores password credentials. There is no update operation.
type CredentialRepository interface {
	Create(ctx context.Context, credential *entity.Credential) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error)
}
