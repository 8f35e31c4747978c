package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/config"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
	"github.com/autoworks/workshop-backend/pkg/security"
)

type employeeCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Username string `json:"username" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,min=1,max=50"`
}

type employeeUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
	Role     *string `json:"role,omitempty" validate:"omitempty,min=1,max=50"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// EmployeeCreate stores a new staff member. The password is hashed with
// argon2id before it touches the database and is never echoed back.
func EmployeeCreate(repository *repo.Repository[models.Employee], passwordCfg config.PasswordConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req employeeCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hash, err := security.HashPassword(req.Password, passwordCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password"))
			return
		}

		created, err := repository.Create(r.Context(), &models.Employee{
			Name:         req.Name,
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         req.Role,
			IsActive:     true,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func EmployeeUpdate(repository *repo.Repository[models.Employee], passwordCfg config.PasswordConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req employeeUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.Name != nil {
			changes["name"] = *req.Name
		}
		if req.Email != nil {
			changes["email"] = *req.Email
		}
		if req.Password != nil {
			hash, err := security.HashPassword(*req.Password, passwordCfg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password"))
				return
			}
			changes["password_hash"] = hash
		}
		if req.Role != nil {
			changes["role"] = *req.Role
		}
		if req.IsActive != nil {
			changes["is_active"] = *req.IsActive
		}

		updated, err := repository.UpdateByID(r.Context(), id, changes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if updated == nil {
			responses.WriteError(r.Context(), logg, w, errRecordNotFound())
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
