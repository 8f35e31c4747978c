package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type complaintCreateRequest struct {
	Description string `json:"description" validate:"required,min=1"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority" validate:"required"`
	CustomerID  int64  `json:"customer_id" validate:"required,min=1"`
}

type complaintUpdateRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

func ComplaintCreate(repository *repo.Repository[models.Complaint], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req complaintCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priority, err := enums.ParseComplaintPriority(req.Priority)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority"))
			return
		}

		status := enums.ComplaintStatusOpen
		if req.Status != "" {
			status, err = enums.ParseComplaintStatus(req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
		}

		created, err := repository.Create(r.Context(), &models.Complaint{
			Description: req.Description,
			Status:      status,
			Priority:    priority,
			CustomerID:  req.CustomerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ComplaintUpdate(repository *repo.Repository[models.Complaint], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req complaintUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.Description != nil {
			changes["description"] = *req.Description
		}
		if req.Status != nil {
			status, err := enums.ParseComplaintStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			changes["status"] = status
		}
		if req.Priority != nil {
			priority, err := enums.ParseComplaintPriority(*req.Priority)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority"))
				return
			}
			changes["priority"] = priority
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
