// Package accountrepo resolves API tokens to authenticated identities.
// Credential issuance is handled outside this service; the users table is
// provisioned by operations tooling.
package accountrepo

import (
	"context"
	"errors"

	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO represents the database structure for API users.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Login    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role     string    `gorm:"type:varchar(32);not null"`
	Token    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Approved bool      `gorm:"not null"`
}

// TableName specifies the database table name for user entities.
// Overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// GormAccountRepository implements token-to-identity resolution using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// GetByToken resolves an API token to an identity.
// Returns errs.ErrObjectNotFound for unknown tokens.
func (r *GormAccountRepository) GetByToken(ctx context.Context, token string) (account.Identity, error) {
	if token == "" {
		return account.Identity{}, errs.NewValueIsRequiredError("token")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account.Identity{}, errs.NewObjectNotFoundError("user", "by token")
		}
		return account.Identity{}, err
	}

	return toDomain(dto)
}

// toDomain converts a user DTO to an identity value object.
func toDomain(dto UserDTO) (account.Identity, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return account.Identity{}, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return account.Identity{}, err
	}

	return account.NewIdentity(id, dto.Login, role, dto.Approved)
}
