// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	"catalog/config"
	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	acronymRepo     repository.AcronymRepository
	hasher          service.PasswordHasher
	tokenService    service.TokenService
	appleVerifier   service.IdentityTokenVerifier
	pictures        service.PictureStore
	maxPictureBytes int64
	logger          *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	AcronymRepo   repository.AcronymRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	AppleVerifier service.IdentityTokenVerifier `optional:"true"`
	Pictures      service.PictureStore
	Config        *config.Config
	Logger        *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var maxPictureBytes int64
	if params.Config != nil {
		maxPictureBytes = params.Config.Upload.MaxPictureBytes
	}

	return &userService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		acronymRepo:     params.AcronymRepo,
		hasher:          params.Hasher,
		tokenService:    params.TokenService,
		appleVerifier:   params.AppleVerifier,
		pictures:        params.Pictures,
		maxPictureBytes: maxPictureBytes,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new local account with a bcrypt-hashed password.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Registering user", slog.String("username", input.Username))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User registered", slog.Any("userID", user.ID))

	return user, nil
}

// Login verifies basic-auth credentials and issues a fresh API token.
// Unknown usernames and wrong passwords fail identically.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("User login", slog.String("username", input.Username))

	var token *entity.Token
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		token, err = srv.issueToken(ctx, repoFactory.TokenRepo(), user.ID)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	return &usecase.LoginOutput{Token: token}, nil
}

// SignInWithApple verifies the identity token and logs the matching user in,
// creating the account on first sign-in. Apple only sends name and email on
// the first authorization, so a first sign-in without them is rejected.
func (srv *userService) SignInWithApple(ctx context.Context, input *usecase.SignInWithAppleInput) (*usecase.LoginOutput, error) {
	if srv.appleVerifier == nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("sign in with apple is not configured")
	}

	siwaUser, err := srv.appleVerifier.Verify(ctx, input.IdentityToken)
	if err != nil {
		srv.log(ctx).Warn("SIWA token rejected", slog.Any("error", err))

		return nil, err
	}

	var token *entity.Token
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindBySIWAIdentifier(ctx, siwaUser.Identifier)
		if err != nil {
			if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to find user by siwa identifier")
			}

			user, err = srv.createSIWAUser(ctx, userRepo, siwaUser, input.Name)
			if err != nil {
				return err
			}
		}

		token, err = srv.issueToken(ctx, repoFactory.TokenRepo(), user.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return &usecase.LoginOutput{Token: token}, nil
}

// createSIWAUser provisions the local account for a first Apple sign-in. The
// password is an unguessable throwaway; the account is only usable via SIWA.
func (srv *userService) createSIWAUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	siwaUser *service.SIWAUser,
	name *string,
) (*entity.User, error) {
	if name == nil || *name == "" || siwaUser.Email == "" {
		return nil, domainerrors.ErrSIWAClaimsMissing
	}

	hash, err := srv.hasher.Hash(uuid.New().String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash placeholder password")
	}

	identifier := siwaUser.Identifier
	user := &entity.User{
		ID:             uuid.New(),
		Name:           *name,
		Username:       siwaUser.Email,
		PasswordHash:   hash,
		Email:          siwaUser.Email,
		SIWAIdentifier: &identifier,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create SIWA user")
	}

	srv.log(ctx).Info("Created user from Apple sign-in", slog.Any("userID", user.ID))

	return user, nil
}

// issueToken mints an opaque bearer value and persists its digest.
func (srv *userService) issueToken(ctx context.Context, tokenRepo repository.TokenRepository, userID uuid.UUID) (*entity.Token, error) {
	value, valueHash, err := srv.tokenService.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	token := &entity.Token{
		ID:        uuid.New(),
		Value:     value,
		ValueHash: valueHash,
		UserID:    userID,
	}
	if err := tokenRepo.Create(ctx, token); err != nil {
		return nil, errors.Wrap(err, "failed to store token")
	}

	return token, nil
}

// ListUsers returns every registered user.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser returns a single user by ID.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// DeleteUser removes a user. Tokens and acronyms follow via cascade.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting user", slog.Any("userID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// ListAcronyms returns the acronyms owned by a user.
func (srv *userService) ListAcronyms(ctx context.Context, userID uuid.UUID) ([]*entity.Acronym, error) {
	if _, err := srv.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	acronyms, err := srv.acronymRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list acronyms for user")
	}

	return acronyms, nil
}

// UploadProfilePicture stores the picture bytes and records the generated
// filename on the user row, replacing any earlier picture reference.
func (srv *userService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, data []byte) (*entity.User, error) {
	if srv.maxPictureBytes > 0 && int64(len(data)) > srv.maxPictureBytes {
		return nil, domainerrors.ErrPictureTooLarge
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		filename := fmt.Sprintf("%s-%s.jpg", userID, uuid.New())
		if err := srv.pictures.Save(ctx, filename, data); err != nil {
			return errors.Wrap(err, "failed to store picture")
		}

		found.ProfilePicture = &filename
		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to record picture filename")
		}
		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to upload profile picture", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Profile picture stored", slog.Any("userID", userID), slog.String("filename", *user.ProfilePicture))

	return user, nil
}

// GetProfilePicture returns the stored picture bytes for a user.
func (srv *userService) GetProfilePicture(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := srv.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfilePicture == nil {
		return nil, domainerrors.ErrPictureNotFound
	}

	data, err := srv.pictures.Load(ctx, *user.ProfilePicture)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load picture")
	}

	return data, nil
}
