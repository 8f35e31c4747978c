package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type feedbackCreateRequest struct {
	Description string `json:"description" validate:"required,min=1"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	CustomerID  int64  `json:"customer_id" validate:"required,min=1"`
	EmployeeID  *int64 `json:"employee_id,omitempty" validate:"omitempty,min=1"`
}

type feedbackUpdateRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

func FeedbackCreate(repository *repo.Repository[models.Feedback], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req feedbackCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := repository.Create(r.Context(), &models.Feedback{
			Description: req.Description,
			Rating:      req.Rating,
			CustomerID:  req.CustomerID,
			EmployeeID:  req.EmployeeID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func FeedbackUpdate(repository *repo.Repository[models.Feedback], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req feedbackUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.Description != nil {
			changes["description"] = *req.Description
		}
		if req.Rating != nil {
			changes["rating"] = *req.Rating
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
