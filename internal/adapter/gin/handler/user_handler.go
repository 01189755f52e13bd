package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"usuarios-api/internal/usecase/user"
	apperrors "usuarios-api/pkg/errors"
	"usuarios-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Messages for failures that never reach the use case.
const (
	MsgInvalidJSON   = "El cuerpo de la solicitud debe ser un JSON válido"
	MsgFieldType     = "El campo %s debe ser una cadena de texto"
	MsgInternalError = "Error interno del servidor"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	NombreApellido  string `json:"nombre_apellido"`
	Email           string `json:"email"`
	ZonaResidencial string `json:"zona_residencial"`
	Telefono        string `json:"telefono"`
}

// VerifyEmailRequest represents the HTTP request body for an email check
type VerifyEmailRequest struct {
	Email string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID              int64     `json:"id"`
	NombreApellido  string    `json:"nombre_apellido"`
	Email           string    `json:"email"`
	ZonaResidencial string    `json:"zona_residencial"`
	Telefono        string    `json:"telefono"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Data  []UserResponse `json:"data"`
	Total int64          `json:"total"`
	Pages int64          `json:"pages"`
}

// MessageResponse carries a single human readable message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorsResponse lists every violated input rule
type ErrorsResponse struct {
	Errors []apperrors.FieldError `json:"errors"`
}

// CreateUser handles POST /usuarios
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		h.invalidBody(c, err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		FullName:        req.NombreApellido,
		Email:           req.Email,
		ResidentialZone: req.ZonaResidencial,
		Phone:           req.Telefono,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp.User))
}

// ListUsers handles GET /usuarios
func (h *UserHandler) ListUsers(c *gin.Context) {
	pageStr := queryOrDefault(c, "page", user.DefaultPage)
	perPageStr := queryOrDefault(c, "per_page", user.DefaultPerPage)

	var fieldErrs []apperrors.FieldError
	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil {
		fieldErrs = append(fieldErrs, user.PageError(pageStr))
	}
	perPage, err := strconv.ParseInt(perPageStr, 10, 64)
	if err != nil {
		fieldErrs = append(fieldErrs, user.PerPageError(perPageStr))
	}
	if len(fieldErrs) > 0 {
		h.handleError(c, apperrors.NewValidationError(fieldErrs...))
		return
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		data[i] = toUserResponse(u)
	}

	out := ListUsersResponse{Data: data}
	if resp.Pagination != nil {
		out.Total = resp.Pagination.Total
		out.Pages = resp.Pagination.TotalPages
	}
	c.JSON(http.StatusOK, out)
}

// VerifyEmail handles POST /usuarios/verificar-correo. A registered email
// answers 200 and an unknown one 409.
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req VerifyEmailRequest
	if err := bindJSON(c, &req); err != nil {
		log.Warn("Invalid verify email request", zap.Error(err))
		h.invalidBody(c, err)
		return
	}

	resp, err := h.uc.VerifyEmail(c.Request.Context(), user.VerifyEmailRequest{Email: req.Email})
	if err != nil {
		h.handleError(c, err)
		return
	}

	if resp.Exists {
		c.JSON(http.StatusOK, MessageResponse{Message: user.MsgEmailExists})
		return
	}
	c.JSON(http.StatusConflict, MessageResponse{Message: user.MsgEmailNotFound})
}

// queryOrDefault treats an empty parameter the same as a missing one.
func queryOrDefault(c *gin.Context, key string, def int64) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return strconv.FormatInt(def, 10)
}

// bindJSON decodes the request body into obj. An empty body decodes to the zero
// value so that missing fields surface as validation errors.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// invalidBody reports an undecodable body. A field of the wrong JSON type is
// reported against that field.
func (h *UserHandler) invalidBody(c *gin.Context, err error) {
	fe := apperrors.NewFieldError("", "", MsgInvalidJSON)

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fe = apperrors.NewFieldError(typeErr.Field, "", fmt.Sprintf(MsgFieldType, typeErr.Field))
	}

	c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: []apperrors.FieldError{fe}})
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(validationErr.HTTPStatus(), ErrorsResponse{Errors: validationErr.Fields})
		return
	}

	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) && statuser.HTTPStatus() < http.StatusInternalServerError {
		c.JSON(statuser.HTTPStatus(), MessageResponse{Message: statuser.Error()})
		return
	}

	log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: MsgInternalError})
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		NombreApellido:  u.FullName,
		Email:           u.Email,
		ZonaResidencial: u.ResidentialZone,
		Telefono:        u.Phone,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
