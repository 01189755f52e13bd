package user

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	domain "usuarios-api/internal/domain/user"
	apperrors "usuarios-api/pkg/errors"
	"usuarios-api/pkg/validation"
)

// Input field names as exposed to clients; validation errors point at them.
const (
	FieldFullName        = "nombre_apellido"
	FieldEmail           = "email"
	FieldResidentialZone = "zona_residencial"
	FieldPhone           = "telefono"
	FieldPage            = "page"
	FieldPerPage         = "per_page"
)

// Pagination bounds for ListUsers.
const (
	DefaultPage    int64 = 1
	DefaultPerPage int64 = 10
	MaxPerPage     int64 = 100
)

// Messages returned to clients on email conflicts and lookups.
const (
	MsgEmailExists   = "El correo electrónico ya existe en la base de datos"
	MsgEmailNotFound = "El correo electrónico no existe en la base de datos"
)

var createUserRules = []validation.Rule{
	validation.Required(FieldFullName),
	validation.Required(FieldEmail),
	validation.Email(FieldEmail),
	validation.Required(FieldResidentialZone),
	validation.Required(FieldPhone),
	validation.MaxLength(FieldFullName, domain.MaxFullNameLength),
	validation.MaxLength(FieldEmail, domain.MaxEmailLength),
	validation.MaxLength(FieldResidentialZone, domain.MaxResidentialZoneLength),
	validation.MaxLength(FieldPhone, domain.MaxPhoneLength),
}

var verifyEmailRules = []validation.Rule{
	validation.Required(FieldEmail),
	validation.Email(FieldEmail),
}

// Repository defines the interface for user data access operations.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)             // nil, nil when absent
	FindPage(ctx context.Context, offset, limit int64) ([]domain.User, int64, error) // page plus total count
	Insert(ctx context.Context, u *domain.User) error                                // fills in generated fields
}

// UserUsecase implements the business logic for user registration operations.
type UserUsecase struct {
	repo      Repository            // Repository for data access
	log       *zap.Logger           // Logger for structured logging
	validator *validation.Validator // Validator for request validation
}

var _ Usecase = (*UserUsecase)(nil)

// New creates a new instance of UserUsecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: r, log: log, validator: validation.New()}
}

// CreateUser validates the request, rejects already registered emails and stores the user.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user", zap.String("email", in.Email))

	fields := map[string]string{
		FieldFullName:        in.FullName,
		FieldEmail:           in.Email,
		FieldResidentialZone: in.ResidentialZone,
		FieldPhone:           in.Phone,
	}
	if err := uc.validator.Validate(fields, createUserRules); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	existingUser, err := uc.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", existingUser.ID))
		return nil, apperrors.NewAlreadyExistsError("usuario", MsgEmailExists)
	}

	u := &domain.User{
		FullName:        in.FullName,
		Email:           in.Email,
		ResidentialZone: in.ResidentialZone,
		Phone:           in.Phone,
	}
	if err := uc.repo.Insert(ctx, u); err != nil {
		// A concurrent create can pass the lookup above; the unique index catches it.
		if errors.Is(err, domain.ErrEmailTaken) {
			uc.log.Warn("email taken by concurrent create", zap.String("email", in.Email))
			return nil, apperrors.NewAlreadyExistsError("usuario", MsgEmailExists)
		}
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{User: toDTO(*u)}, nil
}

// ListUsers returns one page of users in insertion order along with pagination totals.
func (uc *UserUsecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	var fieldErrs []apperrors.FieldError
	// The row offset (page-1)*per_page has to fit in an int64
	if in.Page < 1 || (in.PerPage > 0 && in.Page > math.MaxInt64/in.PerPage) {
		fieldErrs = append(fieldErrs, PageError(strconv.FormatInt(in.Page, 10)))
	}
	if in.PerPage < 1 || in.PerPage > MaxPerPage {
		fieldErrs = append(fieldErrs, PerPageError(strconv.FormatInt(in.PerPage, 10)))
	}
	if len(fieldErrs) > 0 {
		err := apperrors.NewValidationError(fieldErrs...)
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	uc.log.Info("listing users", zap.Int64("page", in.Page), zap.Int64("per_page", in.PerPage))

	domainUsers, total, err := uc.repo.FindPage(ctx, domain.Offset(in.Page, in.PerPage), in.PerPage)
	if err != nil {
		uc.log.Error("failed to list users", zap.Int64("page", in.Page), zap.Int64("per_page", in.PerPage), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	p := domain.NewPagination(total, in.Page, in.PerPage)
	return &ListUsersResponse{
		Users: users,
		Pagination: &Pagination{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}, nil
}

// VerifyEmail reports whether a user with the given email is registered.
func (uc *UserUsecase) VerifyEmail(ctx context.Context, in VerifyEmailRequest) (*VerifyEmailResponse, error) {
	if err := uc.validator.Validate(map[string]string{FieldEmail: in.Email}, verifyEmailRules); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	existingUser, err := uc.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to look up email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	uc.log.Debug("email verified", zap.String("email", in.Email), zap.Bool("exists", existingUser != nil))
	return &VerifyEmailResponse{Exists: existingUser != nil}, nil
}

// PageError is the validation error reported for an unusable page parameter.
func PageError(value string) apperrors.FieldError {
	return queryFieldError(FieldPage, value, "El parámetro page debe ser un entero mayor o igual a 1")
}

// PerPageError is the validation error reported for an unusable per_page parameter.
func PerPageError(value string) apperrors.FieldError {
	return queryFieldError(FieldPerPage, value,
		fmt.Sprintf("El parámetro per_page debe ser un entero entre 1 y %d", MaxPerPage))
}

func queryFieldError(path, value, msg string) apperrors.FieldError {
	fe := apperrors.NewFieldError(path, value, msg)
	fe.Location = apperrors.LocationQuery
	return fe
}

func toDTO(u domain.User) User {
	return User{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		ResidentialZone: u.ResidentialZone,
		Phone:           u.Phone,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
