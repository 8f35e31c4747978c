package controllers

import (
	"net/http"
	"time"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/reservation"
	"github.com/autoworks/workshop-backend/internal/services"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type serviceCreateRequest struct {
	Status       string                `json:"status" validate:"required"`
	ServiceDate  time.Time             `json:"service_date" validate:"required"`
	DeliveryDate time.Time             `json:"delivery_date" validate:"required"`
	Description  string                `json:"description" validate:"required,min=1"`
	VehicleID    int64                 `json:"vehicle_id" validate:"required,min=1"`
	Items        []reservation.Request `json:"items" validate:"required,min=1,dive"`
}

type serviceUpdateRequest struct {
	Status       *string               `json:"status,omitempty"`
	ServiceDate  *time.Time            `json:"service_date,omitempty"`
	DeliveryDate *time.Time            `json:"delivery_date,omitempty"`
	Description  *string               `json:"description,omitempty" validate:"omitempty,min=1"`
	Items        []reservation.Request `json:"items" validate:"required,min=1,dive"`
}

func ServiceCreate(repository *services.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req serviceCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseServiceStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		if err := checkSchedule(req.ServiceDate, req.DeliveryDate); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := repository.Create(r.Context(), &models.Service{
			Status:       status,
			ServiceDate:  req.ServiceDate,
			DeliveryDate: req.DeliveryDate,
			Description:  req.Description,
			VehicleID:    req.VehicleID,
		}, req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ServiceUpdate(repository *services.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req serviceUpdateRequest
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
		if req.DeliveryDate != nil {
			changes["delivery_date"] = *req.DeliveryDate
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

func ServiceDelete(repository *services.Repository, logg *logger.Logger) http.HandlerFunc {
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

// checkSchedule rejects work scheduled before today or delivered before it
// starts. Dates are compared at day precision in UTC.
func checkSchedule(serviceDate, deliveryDate time.Time) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if serviceDate.Before(today) {
		return pkgerrors.New(pkgerrors.CodeValidation, "service_date cannot be in the past")
	}
	if !deliveryDate.IsZero() && deliveryDate.Before(serviceDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery_date cannot be before service_date")
	}
	return nil
}
