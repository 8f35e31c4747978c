package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type vehicleCreateRequest struct {
	Make          string `json:"make" validate:"required,min=1,max=255"`
	Model         string `json:"model" validate:"required,min=1,max=255"`
	Year          int    `json:"year" validate:"required,min=1886"`
	VehicleNumber string `json:"vehicle_number" validate:"required,min=1,max=17"`
	CustomerID    int64  `json:"customer_id" validate:"required,min=1"`
}

type vehicleUpdateRequest struct {
	Make          *string `json:"make,omitempty" validate:"omitempty,min=1,max=255"`
	Model         *string `json:"model,omitempty" validate:"omitempty,min=1,max=255"`
	Year          *int    `json:"year,omitempty" validate:"omitempty,min=1886"`
	VehicleNumber *string `json:"vehicle_number,omitempty" validate:"omitempty,min=1,max=17"`
}

func (req vehicleUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if req.Make != nil {
		changes["make"] = *req.Make
	}
	if req.Model != nil {
		changes["model"] = *req.Model
	}
	if req.Year != nil {
		changes["year"] = *req.Year
	}
	if req.VehicleNumber != nil {
		changes["vehicle_number"] = *req.VehicleNumber
	}
	return changes
}

func VehicleCreate(repository *repo.Repository[models.Vehicle], customers *repo.Repository[models.Customer], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vehicleCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := customers.FindByID(r.Context(), req.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if owner == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeValidation, "Customer with id %d not found", req.CustomerID))
			return
		}

		created, err := repository.Create(r.Context(), &models.Vehicle{
			Make:          req.Make,
			Model:         req.Model,
			Year:          req.Year,
			VehicleNumber: req.VehicleNumber,
			CustomerID:    req.CustomerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func VehicleUpdate(repository *repo.Repository[models.Vehicle], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req vehicleUpdateRequest
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
