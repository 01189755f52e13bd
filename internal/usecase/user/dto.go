package user

import "time"

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	FullName        string
	Email           string
	ResidentialZone string
	Phone           string
}

// CreateUserResponse carries the stored user, including its generated ID.
type CreateUserResponse struct {
	User User
}

// ListUsersRequest represents the request payload for listing users.
type ListUsersRequest struct {
	Page    int64
	PerPage int64
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []User
	Pagination *Pagination
}

// Pagination represents pagination information for list responses.
type Pagination struct {
	Total      int64
	Page       int64
	Limit      int64
	TotalPages int64
}

// VerifyEmailRequest represents the request payload for an email existence check.
type VerifyEmailRequest struct {
	Email string
}

// VerifyEmailResponse reports whether a user with the email exists.
type VerifyEmailResponse struct {
	Exists bool
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID              int64
	FullName        string
	Email           string
	ResidentialZone string
	Phone           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
