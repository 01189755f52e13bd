package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"usuarios-api/internal/domain/user"
	apperrors "usuarios-api/pkg/errors"
)

// pgUniqueViolation is the SQLSTATE PostgreSQL reports for unique index violations.
const pgUniqueViolation = "23505"

// UserRepoPG implements the user Repository on top of GORM. Production runs on
// PostgreSQL; the same code drives the SQLite driver used in development and tests.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the usuarios table.
type UserSchema struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	FullName        string    `gorm:"column:nombre_apellido;size:50;not null"`
	Email           string    `gorm:"column:email;size:100;not null;uniqueIndex"`
	ResidentialZone string    `gorm:"column:zona_residencial;size:50;not null"`
	Phone           string    `gorm:"column:telefono;size:20;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "usuarios"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:              m.ID,
		FullName:        m.FullName,
		Email:           m.Email,
		ResidentialZone: m.ResidentialZone,
		Phone:           m.Phone,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// AutoMigrate creates or updates the usuarios table, including the unique index on email.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate usuarios table: %w", err)
	}
	return nil
}

// Insert persists a new user and fills in its generated ID and timestamps.
// A unique index violation is reported as user.ErrEmailTaken.
func (r *UserRepoPG) Insert(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		FullName:        u.FullName,
		Email:           u.Email,
		ResidentialZone: u.ResidentialZone,
		Phone:           u.Phone,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("email rejected by unique index", zap.String("email", u.Email))
			return fmt.Errorf("insert usuario: %w", user.ErrEmailTaken)
		}
		r.log.Error("failed to insert user in db", zap.Error(err), zap.String("email", u.Email))
		return apperrors.NewStorageError("insert usuario", err)
	}

	*u = model.toDomain()
	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return nil
}

// FindByEmail retrieves a user by exact email match. It returns nil, nil when
// no user has that email.
func (r *UserRepoPG) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, apperrors.NewStorageError("find usuario by email", err)
	}

	u := model.toDomain()
	return &u, nil
}

// FindPage returns up to limit users starting at offset, in insertion order,
// together with the total number of users.
func (r *UserRepoPG) FindPage(ctx context.Context, offset, limit int64) ([]user.User, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&UserSchema{}).Count(&total).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err))
		return nil, 0, apperrors.NewStorageError("count usuarios", err)
	}

	var models []UserSchema
	if err := db.Order("id ASC").Offset(int(offset)).Limit(int(limit)).Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.Int64("offset", offset), zap.Int64("limit", limit))
		return nil, 0, apperrors.NewStorageError("list usuarios", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, total, nil
}

// isUniqueViolation reports whether err comes from a unique index. GORM translates
// it when TranslateError is on; the driver checks cover connections opened without it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
