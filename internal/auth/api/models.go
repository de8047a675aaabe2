package authapi

import (
	"net/mail"
	"strings"

	"taskflow/internal/httpapi"
	"taskflow/internal/identity"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func (req registerRequest) validate() *httpapi.Error {
	details := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 || len(name) > 80 {
		details["name"] = "must be between 2 and 80 characters"
	}
	if !validEmail(req.Email) {
		details["email"] = "must be a valid email address"
	}
	if len(req.Password) < 8 || len(req.Password) > 200 {
		details["password"] = "must be between 8 and 200 characters"
	}

	if len(details) > 0 {
		return httpapi.Validation(details)
	}
	return nil
}

func (req loginRequest) validate() *httpapi.Error {
	details := map[string]string{}

	if !validEmail(req.Email) {
		details["email"] = "must be a valid email address"
	}
	if req.Password == "" {
		details["password"] = "is required"
	}

	if len(details) > 0 {
		return httpapi.Validation(details)
	}
	return nil
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	// Reject the display-name form; only the bare address is accepted.
	return err == nil && addr.Address == s
}
