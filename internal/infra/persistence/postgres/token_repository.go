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

// tokenRepository implements the domain.TokenRepository interface using GORM.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository is the constructor for tokenRepository.
func NewTokenRepository(db *gorm.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Create persists a new API token. Only the hash of the token value is
// stored; the raw value never touches the database.
func (repo *tokenRepository) Create(ctx context.Context, token *entity.Token) error {
	tokenM := fromTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByValueHash looks up a token by the hash of its bearer value.
func (repo *tokenRepository) FindByValueHash(ctx context.Context, valueHash string) (*entity.Token, error) {
	var tokenM model.TokenModel
	if err := repo.db.WithContext(ctx).First(&tokenM, "value_hash = ?", valueHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find token by value hash")
	}

	return toTokenDomain(&tokenM), nil
}

// FindByUserID returns every token issued to a user.
func (repo *tokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Token, error) {
	var tokenModels []model.TokenModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tokenModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tokens for user")
	}

	tokens := make([]*entity.Token, 0, len(tokenModels))
	for i := range tokenModels {
		tokens = append(tokens, toTokenDomain(&tokenModels[i]))
	}

	return tokens, nil
}

// --- Mapper Functions ---

// toTokenDomain converts a GORM TokenModel to a domain Token entity. The raw
// token value is never persisted, so the mapped entity carries the hash only.
func toTokenDomain(data *model.TokenModel) *entity.Token {
	if data == nil {
		return nil
	}

	return &entity.Token{
		ID:        data.ID,
		ValueHash: data.ValueHash,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

// fromTokenDomain converts a domain Token entity to a GORM TokenModel.
func fromTokenDomain(data *entity.Token) *model.TokenModel {
	if data == nil {
		return nil
	}

	return &model.TokenModel{
		ID:        data.ID,
		ValueHash: data.ValueHash,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}
