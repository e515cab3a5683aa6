package postgres

import (
	"context"

	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// acronymRepository implements the domain.AcronymRepository interface using GORM,
// including the pivot-table queries of the relationship manager.
type acronymRepository struct {
	db *gorm.DB
}

// NewAcronymRepository is the constructor for acronymRepository.
func NewAcronymRepository(db *gorm.DB) repository.AcronymRepository {
	return &acronymRepository{db: db}
}

// FindByID retrieves a single acronym by its unique ID.
func (repo *acronymRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Acronym, error) {
	var acronymM model.AcronymModel
	if err := repo.db.WithContext(ctx).First(&acronymM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAcronymNotFound
		}

		return nil, errors.Wrap(err, "failed to find acronym by id")
	}

	return toAcronymDomain(&acronymM), nil
}

// FindAll retrieves every acronym, in default result order.
func (repo *acronymRepository) FindAll(ctx context.Context) ([]*entity.Acronym, error) {
	return repo.findAcronyms(ctx, repo.db.WithContext(ctx))
}

// Search retrieves acronyms whose short or long form exactly matches term.
func (repo *acronymRepository) Search(ctx context.Context, term string) ([]*entity.Acronym, error) {
	tx := repo.db.WithContext(ctx).Where("short = ?", term).Or("long = ?", term)

	return repo.findAcronyms(ctx, tx)
}

// FindAllSorted retrieves every acronym ordered ascending by short form.
func (repo *acronymRepository) FindAllSorted(ctx context.Context) ([]*entity.Acronym, error) {
	return repo.findAcronyms(ctx, repo.db.WithContext(ctx).Order("short ASC"))
}

// FindFirst returns the first acronym in default result order.
func (repo *acronymRepository) FindFirst(ctx context.Context) (*entity.Acronym, error) {
	var acronymM model.AcronymModel
	if err := repo.db.WithContext(ctx).Take(&acronymM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAcronymNotFound
		}

		return nil, errors.Wrap(err, "failed to find first acronym")
	}

	return toAcronymDomain(&acronymM), nil
}

// FindByUserID retrieves all acronyms owned by a user.
func (repo *acronymRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Acronym, error) {
	return repo.findAcronyms(ctx, repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

// Create persists a new acronym.
func (repo *acronymRepository) Create(ctx context.Context, acronym *entity.Acronym) error {
	acronymM := fromAcronymDomain(acronym)

	if err := repo.db.WithContext(ctx).Create(acronymM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required acronym information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create acronym")
	}

	acronym.ID = acronymM.ID

	return nil
}

// Update replaces the mutable fields of an existing acronym.
func (repo *acronymRepository) Update(ctx context.Context, acronym *entity.Acronym) error {
	result := repo.db.WithContext(ctx).Model(&model.AcronymModel{}).
		Where("id = ?", acronym.ID).
		Updates(map[string]any{
			"short":   acronym.Short,
			"long":    acronym.Long,
			"user_id": acronym.UserID,
		})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update acronym")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAcronymNotFound
	}

	return nil
}

// Delete removes an acronym. Pivot rows cascade at the store level.
func (repo *acronymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AcronymModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete acronym")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAcronymNotFound
	}

	return nil
}

// FindCategories returns the categories attached to an acronym through the
// pivot table. Order is unspecified.
func (repo *acronymRepository) FindCategories(ctx context.Context, acronymID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN acronym_categories ON acronym_categories.category_id = categories.id").
		Where("acronym_categories.acronym_id = ?", acronymID).
		Find(&categoryModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories for acronym")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, toCategoryDomain(&categoryModels[i]))
	}

	return categories, nil
}

// AttachCategory inserts one pivot row for the pair. The store's unique
// index rejects a duplicate pair when two attaches race past the service
// layer's pre-check.
func (repo *acronymRepository) AttachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error {
	pivot := model.AcronymCategoryModel{
		AcronymID:  acronymID,
		CategoryID: categoryID,
	}

	if err := repo.db.WithContext(ctx).Create(&pivot).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrPivotAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAcronymNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to attach category")
	}

	return nil
}

// DetachCategory deletes the pivot row for the pair.
func (repo *acronymRepository) DetachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("acronym_id = ? AND category_id = ?", acronymID, categoryID).
		Delete(&model.AcronymCategoryModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to detach category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPivotNotFound
	}

	return nil
}

func (repo *acronymRepository) findAcronyms(_ context.Context, tx *gorm.DB) ([]*entity.Acronym, error) {
	var acronymModels []model.AcronymModel
	if err := tx.Find(&acronymModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list acronyms")
	}

	acronyms := make([]*entity.Acronym, 0, len(acronymModels))
	for i := range acronymModels {
		acronyms = append(acronyms, toAcronymDomain(&acronymModels[i]))
	}

	return acronyms, nil
}

// --- Mapper Functions ---

// toAcronymDomain converts a GORM AcronymModel to a domain Acronym entity.
func toAcronymDomain(data *model.AcronymModel) *entity.Acronym {
	if data == nil {
		return nil
	}

	return &entity.Acronym{
		ID:     data.ID,
		Short:  data.Short,
		Long:   data.Long,
		UserID: data.UserID,
	}
}

// fromAcronymDomain converts a domain Acronym entity to a GORM AcronymModel.
func fromAcronymDomain(data *entity.Acronym) *model.AcronymModel {
	if data == nil {
		return nil
	}

	return &model.AcronymModel{
		ID:     data.ID,
		Short:  data.Short,
		Long:   data.Long,
		UserID: data.UserID,
	}
}
