package postgres

import (
	"context"

	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	"taskmanager/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Create stores the credential of a freshly created user.
func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	credM := &model.CredentialModel{
		UserID:       credential.UserID,
		PasswordHash: credential.PasswordHash,
		Cost:         credential.Cost,
		CreatedAt:    credential.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(credM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("credential already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("credential references unknown user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
	}

	credential.CreatedAt = credM.CreatedAt

	return nil
}

// FindByUserID loads the credential of the user.
func (repo *credentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	var credM model.CredentialModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&credM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential")
	}

	return &entity.Credential{
		UserID:       credM.UserID,
		PasswordHash: credM.PasswordHash,
		Cost:         credM.Cost,
		CreatedAt:    credM.CreatedAt,
	}, nil
}
