package controllers

import (
	"net/http"
	"time"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/jobcards"
	"github.com/autoworks/workshop-backend/internal/reservation"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type jobCardCreateRequest struct {
	Status      string                `json:"status" validate:"required"`
	ServiceDate time.Time             `json:"service_date" validate:"required"`
	Description string                `json:"description" validate:"required,min=1"`
	VehicleID   int64                 `json:"vehicle_id" validate:"required,min=1"`
	Items       []reservation.Request `json:"items" validate:"required,min=1,dive"`
}

type jobCardUpdateRequest struct {
	Status      *string               `json:"status,omitempty"`
	ServiceDate *time.Time            `json:"service_date,omitempty"`
	Description *string               `json:"description,omitempty" validate:"omitempty,min=1"`
	Items       []reservation.Request `json:"items" validate:"required,min=1,dive"`
}

type swapInventoryRequest struct {
	PreviousInventoryID int64 `json:"previous_inventory_id" validate:"required,min=1"`
	NewInventoryID      int64 `json:"new_inventory_id" validate:"required,min=1"`
}

func JobCardCreate(repository *jobcards.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jobCardCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseServiceStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		if err := checkSchedule(req.ServiceDate, time.Time{}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := repository.Create(r.Context(), &models.JobCard{
			Status:      status,
			ServiceDate: req.ServiceDate,
			Description: req.Description,
			VehicleID:   req.VehicleID,
		}, req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func JobCardUpdate(repository *jobcards.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req jobCardUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.Status != nil {
			status, err := enums.ParseServiceStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			changes["status"] = status
		}
		if req.ServiceDate != nil {
			changes["service_date"] = *req.ServiceDate
		}
		if req.Description != nil {
			changes["description"] = *req.Description
		}

		updated, err := repository.UpdateByID(r.Context(), id, changes, req.Items)
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

func JobCardDelete(repository *jobcards.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := repository.DeleteByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if deleted == nil {
			responses.WriteError(r.Context(), logg, w, errRecordNotFound())
			return
		}

		responses.WriteSuccess(w, deleted)
	}
}

// JobCardSwapInventory repoints a reservation link at a different item. The
// reserved quantity rides along unchanged and no stock moves.
func JobCardSwapInventory(repository *jobcards.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req swapInventoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		swapped, err := repository.SwapInventory(r.Context(), id, req.PreviousInventoryID, req.NewInventoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if swapped == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "job card, inventory link, or replacement item not found"))
			return
		}

		responses.WriteSuccess(w, swapped)
	}
}
