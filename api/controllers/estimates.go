package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type estimateLine struct {
	Description string  `json:"description" validate:"required,min=1"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	UnitPrice   float64 `json:"unit_price" validate:"min=0"`
}

type estimateCreateRequest struct {
	EstimateDate time.Time      `json:"estimate_date" validate:"required"`
	ValidUntil   time.Time      `json:"valid_until" validate:"required"`
	Status       string         `json:"status,omitempty"`
	Description  *string        `json:"description,omitempty" validate:"omitempty,max=255"`
	VehicleID    int64          `json:"vehicle_id" validate:"required,min=1"`
	JobCardID    *int64         `json:"job_card_id,omitempty" validate:"omitempty,min=1"`
	CustomerID   *int64         `json:"customer_id,omitempty" validate:"omitempty,min=1"`
	TotalAmount  *float64       `json:"total_amount,omitempty" validate:"omitempty,min=0"`
	Lines        []estimateLine `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
}

type estimateUpdateRequest struct {
	EstimateDate *time.Time `json:"estimate_date,omitempty"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=255"`
	TotalAmount  *float64   `json:"total_amount,omitempty" validate:"omitempty,min=0"`
}

// totalFromLines prices out the quoted lines, rounding the sum to cents.
func totalFromLines(lines []estimateLine) float64 {
	total := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.UnitPrice)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2).InexactFloat64()
}

func EstimateCreate(repository *repo.Repository[models.Estimate], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req estimateCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.EstimateStatusDraft
		if req.Status != "" {
			parsed, err := enums.ParseEstimateStatus(req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = parsed
		}

		if req.ValidUntil.Before(req.EstimateDate) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "valid_until cannot be before estimate_date"))
			return
		}

		var total float64
		switch {
		case len(req.Lines) > 0:
			total = totalFromLines(req.Lines)
		case req.TotalAmount != nil:
			total = decimal.NewFromFloat(*req.TotalAmount).Round(2).InexactFloat64()
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "either lines or total_amount is required"))
			return
		}

		created, err := repository.Create(r.Context(), &models.Estimate{
			EstimateDate: req.EstimateDate,
			TotalAmount:  total,
			Status:       status,
			ValidUntil:   req.ValidUntil,
			Description:  req.Description,
			VehicleID:    req.VehicleID,
			JobCardID:    req.JobCardID,
			CustomerID:   req.CustomerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func EstimateUpdate(repository *repo.Repository[models.Estimate], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req estimateUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.EstimateDate != nil {
			changes["estimate_date"] = *req.EstimateDate
		}
		if req.ValidUntil != nil {
			changes["valid_until"] = *req.ValidUntil
		}
		if req.Status != nil {
			status, err := enums.ParseEstimateStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			changes["status"] = status
		}
		if req.Description != nil {
			changes["description"] = *req.Description
		}
		if req.TotalAmount != nil {
			changes["total_amount"] = decimal.NewFromFloat(*req.TotalAmount).Round(2).InexactFloat64()
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
