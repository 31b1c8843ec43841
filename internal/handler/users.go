package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"microsvc/internal/domain"
)

// UserService defines the user management operations the handlers need.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Search(ctx context.Context, name string) ([]domain.User, error)
	Create(ctx context.Context, name, email, password string) (*domain.User, error)
	Update(ctx context.Context, id int64, name, email string) error
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// UserHandler serves the user management endpoints.
type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Home handles GET /.
func (h *UserHandler) Home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User Management System"))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Get handles GET /user/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, "User not found")
			return
		}
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch {
	case req.Name == "" || req.Email == "" || req.Password == "":
		writeError(w, http.StatusBadRequest, kindValidation, "Missing name, email, or password")
		return
	case !isValidEmail(req.Email):
		writeError(w, http.StatusBadRequest, kindValidation, "Invalid email format")
		return
	case !isStrongPassword(req.Password):
		writeError(w, http.StatusBadRequest, kindValidation,
			fmt.Sprintf("Password too short: at least %d characters required", minPasswordLength))
		return
	case !isHashablePassword(req.Password):
		writeError(w, http.StatusBadRequest, kindValidation,
			fmt.Sprintf("Password too long: at most %d bytes allowed", maxPasswordBytes))
		return
	}

	if _, err := h.service.Create(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

// Update handles PUT /user/{id}. The row is not looked up first.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "Missing name or email")
		return
	}
	if !isValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, kindValidation, "Invalid email format")
		return
	}

	if err := h.service.Update(r.Context(), id, req.Name, req.Email); err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User updated"})
}

// Delete handles DELETE /user/{id}. Unknown ids still get 200.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("User %d deleted", id)})
}

// Search handles GET /search?name=.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "Please provide a name to search")
		return
	}

	users, err := h.service.Search(r.Context(), name)
	if err != nil {
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Login handles POST /login. Unknown email and wrong password produce
// the same 401 body.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "Missing email or password")
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, LoginResponse{Status: "failed"})
			return
		}
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Status: "success", UserID: user.ID})
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
