package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type supplierCreateRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=255"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactNo string  `json:"contact_no" validate:"required,e164"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type supplierUpdateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactNo *string `json:"contact_no,omitempty" validate:"omitempty,e164"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

func (req supplierUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if req.ContactNo != nil {
		changes["contact_no"] = *req.ContactNo
	}
	if req.Address != nil {
		changes["address"] = *req.Address
	}
	return changes
}

func SupplierCreate(repository *repo.Repository[models.Supplier], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req supplierCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := repository.Create(r.Context(), &models.Supplier{
			Name:      req.Name,
			Email:     req.Email,
			ContactNo: req.ContactNo,
			Address:   req.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func SupplierUpdate(repository *repo.Repository[models.Supplier], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req supplierUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := repository.UpdateByID(r.Context(), id, req.changes())
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
