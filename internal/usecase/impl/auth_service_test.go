package impl

import (
	"context"
	"testing"
	"time"

	"taskmanager/internal/domain/entity"
	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/domain/repository"
	mockRepo "taskmanager/internal/mocks/repository"
	mockSvc "taskmanager/internal/mocks/service"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service        usecase.AuthUsecase
	txManager      *mockRepo.MockTransactionManager
	userRepo       *mockRepo.MockUserRepository
	credentialRepo *mockRepo.MockCredentialRepository
	hasher         *mockSvc.MockPasswordHasher
	tokenService   *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	hasher.EXPECT().Hash(dummyPassword).Return("dummy_hash", nil).Once()

	service, err := NewAuthService(AuthServiceParams{
		TxManager:      txManager,
		UserRepo:       userRepo,
		CredentialRepo: credentialRepo,
		Hasher:         hasher,
		TokenService:   tokenService,
		Logger:         newDiscardLogger(),
	})
	require.NoError(t, err)

	return authServiceFixtures{
		service:        service,
		txManager:      txManager,
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
		hasher:         hasher,
		tokenService:   tokenService,
	}
}

// expectTransaction makes Execute run fn against a factory backed by the given repositories.
func expectTransaction(t *testing.T, txManager *mockRepo.MockTransactionManager, userRepo *mockRepo.MockUserRepository, credentialRepo *mockRepo.MockCredentialRepository) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewUserRepository().Return(userRepo).Maybe()
	factory.EXPECT().NewCredentialRepository().Return(credentialRepo).Maybe()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestAuthService_SignUp_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SignUpInput{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Email:     "  Ada@Example.COM ",
		Password:  "password123",
	}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	txCredentialRepo := mockRepo.NewMockCredentialRepository(t)
	expectTransaction(t, fx.txManager, txUserRepo, txCredentialRepo)

	fx.hasher.EXPECT().Hash("password123").Return("hashed_password", nil)
	fx.hasher.EXPECT().Cost().Return(12)

	txUserRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(false, nil)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = userID
		}).
		Return(nil)
	txCredentialRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Credential) bool {
			return c.UserID == userID && c.PasswordHash == "hashed_password" && c.Cost == 12
		})).
		Return(nil)

	expiresAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	fx.tokenService.EXPECT().Issue(userID, "ada@example.com").Return("signed.jwt.token", expiresAt, nil)

	output, err := fx.service.SignUp(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "ada@example.com", output.User.Email)
	assert.Equal(t, "Ada", output.User.FirstName)
	assert.Equal(t, "Ada Lovelace", output.User.FullName())
	assert.Equal(t, expiresAt, output.ExpiresAt)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	txUserRepo := mockRepo.NewMockUserRepository(t)
	txCredentialRepo := mockRepo.NewMockCredentialRepository(t)
	expectTransaction(t, fx.txManager, txUserRepo, txCredentialRepo)

	fx.hasher.EXPECT().Hash("password123").Return("hashed_password", nil)
	txUserRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(true, nil)

	output, err := fx.service.SignUp(ctx, &usecase.SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ADA@example.com",
		Password:  "password123",
	})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_SignUp_UniqueIndexRace(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	txUserRepo := mockRepo.NewMockUserRepository(t)
	txCredentialRepo := mockRepo.NewMockCredentialRepository(t)
	expectTransaction(t, fx.txManager, txUserRepo, txCredentialRepo)

	fx.hasher.EXPECT().Hash("password123").Return("hashed_password", nil)
	txUserRepo.EXPECT().ExistsByEmail(ctx, "ada@example.com").Return(false, nil)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "password123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_SignUp_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)

	fx.hasher.EXPECT().Hash(mock.Anything).Return("", errors.New("bcrypt: password length exceeds 72 bytes"))

	_, err := fx.service.SignUp(context.Background(), &usecase.SignUpInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "x",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestAuthService_SignIn_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(user, nil)
	fx.credentialRepo.EXPECT().FindByUserID(ctx, user.ID).Return(&entity.Credential{UserID: user.ID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.EXPECT().Check("password123", "stored_hash").Return(true)
	fx.tokenService.EXPECT().Issue(user.ID, "ada@example.com").Return("signed.jwt.token", time.Now().Add(24*time.Hour), nil)

	output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: " ADA@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, user, output.User)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(user, nil)
	fx.credentialRepo.EXPECT().FindByUserID(ctx, user.ID).Return(&entity.Credential{UserID: user.ID, PasswordHash: "stored_hash"}, nil)
	fx.hasher.EXPECT().Check("wrong-password", "stored_hash").Return(false)

	output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "ada@example.com", Password: "wrong-password"})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_SignIn_UnknownEmailRunsDummyComparison(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Times(2)
	fx.hasher.EXPECT().Check("password123", "dummy_hash").Return(false).Times(2)

	for range 2 {
		output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "ghost@example.com", Password: "password123"})

		assert.Nil(t, output)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	}
}

func TestNewAuthService_FailsWithoutTimingHash(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(dummyPassword).Return("", errors.New("entropy exhausted"))

	service, err := NewAuthService(AuthServiceParams{
		TxManager:      mockRepo.NewMockTransactionManager(t),
		UserRepo:       mockRepo.NewMockUserRepository(t),
		CredentialRepo: mockRepo.NewMockCredentialRepository(t),
		Hasher:         hasher,
		TokenService:   mockSvc.NewMockTokenService(t),
		Logger:         newDiscardLogger(),
	})

	assert.Nil(t, service)
	assert.Error(t, err)
}

func TestAuthService_SignIn_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(user, nil)
	fx.credentialRepo.EXPECT().FindByUserID(ctx, user.ID).Return(&entity.Credential{PasswordHash: "stored_hash"}, nil)
	fx.hasher.EXPECT().Check(mock.Anything, mock.Anything).Return(false)

	_, unknownErr := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "ghost@example.com", Password: "pw-123456"})
	_, wrongErr := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "ada@example.com", Password: "pw-123456"})

	var unknownApp, wrongApp domainerrors.AppError
	require.True(t, errors.As(unknownErr, &unknownApp))
	require.True(t, errors.As(wrongErr, &wrongApp))
	assert.Equal(t, wrongApp.HTTPCode(), unknownApp.HTTPCode())
	assert.Equal(t, wrongApp.ErrorCode(), unknownApp.ErrorCode())
	assert.Equal(t, wrongApp.Message(), unknownApp.Message())
}

func TestAuthService_SignIn_RepositoryError(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(nil, errors.New("connection reset"))

	_, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "ada@example.com", Password: "password123"})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Contains(t, err.Error(), "failed to find user by email")
}

func TestAuthService_ValidateSession(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}
	missing := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.userRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrUserNotFound)

	got, err := fx.service.ValidateSession(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = fx.service.ValidateSession(ctx, missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}
