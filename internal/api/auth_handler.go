package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avinashh10x/invoiceGen/internal/entity"
)

type AdminEntity struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func adminToAPI(a entity.Admin) AdminEntity {
	return AdminEntity{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Admin   AdminEntity `json:"admin"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	admin, token, err := h.s.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to register admin")
		return
	}

	SendJSON(ctx, w, http.StatusCreated, AuthResponse{
		Message: "Admin registered successfully",
		Token:   token,
		Admin:   adminToAPI(admin),
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	admin, token, err := h.s.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Invalid email or password")
			return
		}

		sendServiceErr(ctx, w, err, "Failed to log in")

		return
	}

	SendJSON(ctx, w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		Admin:   adminToAPI(admin),
	})
}

type ProfileResponse struct {
	Admin AdminEntity `json:"admin"`
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admin, err := h.s.Profile(ctx)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to get profile")
		return
	}

	SendJSON(ctx, w, http.StatusOK, ProfileResponse{Admin: adminToAPI(admin)})
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateProfileResponse struct {
	Message string      `json:"message"`
	Admin   AdminEntity `json:"admin"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateProfileRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	admin, err := h.s.UpdateProfile(ctx, req.Name, req.Email)
	if err != nil {
		sendServiceErr(ctx, w, err, "Failed to update profile")
		return
	}

	SendJSON(ctx, w, http.StatusOK, UpdateProfileResponse{
		Message: "Profile updated successfully",
		Admin:   adminToAPI(admin),
	})
}
