package impl

import (
	"context"
	"log/slog"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// acronymService implements the AcronymUsecase interface.
type acronymService struct {
	txManager   repository.TransactionManager
	acronymRepo repository.AcronymRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// AcronymServiceParams holds dependencies for AcronymService, injected by Fx.
type AcronymServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AcronymRepo repository.AcronymRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewAcronymService is the constructor for acronymService.
func NewAcronymService(params AcronymServiceParams) usecase.AcronymUsecase {
	return &acronymService{
		txManager:   params.TxManager,
		acronymRepo: params.AcronymRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *acronymService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListAcronyms returns every acronym.
func (srv *acronymService) ListAcronyms(ctx context.Context) ([]*entity.Acronym, error) {
	acronyms, err := srv.acronymRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list acronyms")
	}

	return acronyms, nil
}

// GetAcronym returns a single acronym by ID.
func (srv *acronymService) GetAcronym(ctx context.Context, id uuid.UUID) (*entity.Acronym, error) {
	acronym, err := srv.acronymRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAcronymNotFound) {
			return nil, domainerrors.ErrAcronymNotFound
		}

		return nil, errors.Wrap(err, "failed to find acronym")
	}

	return acronym, nil
}

// SearchAcronyms matches the term exactly against short or long forms.
// The delivery layer rejects requests without a term before reaching here.
func (srv *acronymService) SearchAcronyms(ctx context.Context, term string) ([]*entity.Acronym, error) {
	acronyms, err := srv.acronymRepo.Search(ctx, term)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search acronyms")
	}

	return acronyms, nil
}

// ListAcronymsSorted returns all acronyms ordered ascending by short form.
func (srv *acronymService) ListAcronymsSorted(ctx context.Context) ([]*entity.Acronym, error) {
	acronyms, err := srv.acronymRepo.FindAllSorted(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sorted acronyms")
	}

	return acronyms, nil
}

// FirstAcronym returns the first acronym, or a not-found failure when the
// catalog is empty.
func (srv *acronymService) FirstAcronym(ctx context.Context) (*entity.Acronym, error) {
	acronym, err := srv.acronymRepo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrAcronymNotFound) {
			return nil, domainerrors.ErrAcronymNotFound
		}

		return nil, errors.Wrap(err, "failed to find first acronym")
	}

	return acronym, nil
}

// GetAcronymUser returns the owner of an acronym.
func (srv *acronymService) GetAcronymUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	acronym, err := srv.GetAcronym(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, acronym.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find acronym owner")
	}

	return user, nil
}

// CreateAcronym persists a new acronym owned by the authenticated user.
func (srv *acronymService) CreateAcronym(ctx context.Context, userID uuid.UUID, input *usecase.AcronymInput) (*entity.Acronym, error) {
	srv.log(ctx).Info("Creating acronym", slog.String("short", input.Short), slog.Any("userID", userID))

	acronym := &entity.Acronym{
		ID:     uuid.New(),
		Short:  input.Short,
		Long:   input.Long,
		UserID: userID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AcronymRepo().Create(ctx, acronym)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create acronym", slog.String("short", input.Short), slog.Any("error", err))

		return nil, err
	}

	return acronym, nil
}

// UpdateAcronym replaces the short and long forms and reassigns ownership to
// the authenticated actor.
func (srv *acronymService) UpdateAcronym(ctx context.Context, id uuid.UUID, userID uuid.UUID, input *usecase.AcronymInput) (*entity.Acronym, error) {
	srv.log(ctx).Info("Updating acronym", slog.Any("acronymID", id), slog.Any("userID", userID))

	var updated *entity.Acronym
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		acronymRepo := repoFactory.AcronymRepo()

		acronym, err := acronymRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAcronymNotFound) {
				return domainerrors.ErrAcronymNotFound
			}

			return errors.Wrap(err, "failed to find acronym")
		}

		acronym.Short = input.Short
		acronym.Long = input.Long
		acronym.UserID = userID

		if err := acronymRepo.Update(ctx, acronym); err != nil {
			return errors.Wrap(err, "failed to update acronym")
		}
		updated = acronym

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAcronym removes an acronym. Pivot rows follow via cascade.
func (srv *acronymService) DeleteAcronym(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting acronym", slog.Any("acronymID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AcronymRepo().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAcronymNotFound) {
			return domainerrors.ErrAcronymNotFound
		}

		return errors.Wrap(err, "failed to delete acronym")
	}

	return nil
}

// ListCategories returns the categories attached to an acronym.
func (srv *acronymService) ListCategories(ctx context.Context, acronymID uuid.UUID) ([]*entity.Category, error) {
	if _, err := srv.GetAcronym(ctx, acronymID); err != nil {
		return nil, err
	}

	categories, err := srv.acronymRepo.FindCategories(ctx, acronymID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories for acronym")
	}

	return categories, nil
}

// AttachCategory links an acronym and a category. Both sides must exist, and
// an already attached pair is not acceptable. The pair is read back inside
// the transaction before inserting; the store's unique index backstops races.
func (srv *acronymService) AttachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error {
	srv.log(ctx).Info("Attaching category", slog.Any("acronymID", acronymID), slog.Any("categoryID", categoryID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		acronymRepo := repoFactory.AcronymRepo()

		if err := srv.checkPairSidesExist(ctx, repoFactory, acronymID, categoryID); err != nil {
			return err
		}

		attached, err := acronymRepo.FindCategories(ctx, acronymID)
		if err != nil {
			return errors.Wrap(err, "failed to read attached categories")
		}
		for _, category := range attached {
			if category.ID == categoryID {
				return domainerrors.ErrCategoryAlreadyAttached
			}
		}

		if err := acronymRepo.AttachCategory(ctx, acronymID, categoryID); err != nil {
			if errors.Is(err, repository.ErrPivotAlreadyExists) {
				return domainerrors.ErrCategoryAlreadyAttached
			}

			return errors.Wrap(err, "failed to attach category")
		}

		return nil
	})
}

// DetachCategory removes the link between an acronym and a category.
// A pair that is not attached is not acceptable.
func (srv *acronymService) DetachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error {
	srv.log(ctx).Info("Detaching category", slog.Any("acronymID", acronymID), slog.Any("categoryID", categoryID))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.checkPairSidesExist(ctx, repoFactory, acronymID, categoryID); err != nil {
			return err
		}

		if err := repoFactory.AcronymRepo().DetachCategory(ctx, acronymID, categoryID); err != nil {
			if errors.Is(err, repository.ErrPivotNotFound) {
				return domainerrors.ErrCategoryNotAttached
			}

			return errors.Wrap(err, "failed to detach category")
		}

		return nil
	})
}

// checkPairSidesExist verifies the acronym and the category of a pivot
// operation both exist. It says nothing about the pair itself being attached.
func (srv *acronymService) checkPairSidesExist(ctx context.Context, repoFactory repository.RepositoryFactory, acronymID, categoryID uuid.UUID) error {
	if _, err := repoFactory.AcronymRepo().FindByID(ctx, acronymID); err != nil {
		if errors.Is(err, repository.ErrAcronymNotFound) {
			return domainerrors.ErrAcronymNotFound
		}

		return errors.Wrap(err, "failed to find acronym")
	}

	if _, err := repoFactory.CategoryRepo().FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to find category")
	}

	return nil
}
