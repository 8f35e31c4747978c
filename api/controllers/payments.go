package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type paymentCreateRequest struct {
	CustomerID  int64     `json:"customer_id" validate:"required,min=1"`
	JobCardID   int64     `json:"job_card_id" validate:"required,min=1"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Credit      float64   `json:"credit" validate:"min=0"`
	PaymentDate time.Time `json:"payment_date" validate:"required"`
	Method      string    `json:"method" validate:"required"`
	Status      string    `json:"status,omitempty"`
}

type paymentUpdateRequest struct {
	Status *string  `json:"status,omitempty"`
	Credit *float64 `json:"credit,omitempty" validate:"omitempty,min=0"`
}

// newReferenceNumber mints the unique receipt reference stored with every
// payment.
func newReferenceNumber() string {
	return fmt.Sprintf("PAY-%s", uuid.NewString())
}

func PaymentCreate(repository *repo.Repository[models.Payment], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(req.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid method"))
			return
		}

		status := enums.PaymentStatusPending
		if req.Status != "" {
			status, err = enums.ParsePaymentStatus(req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
		}

		amount := decimal.NewFromFloat(req.Amount).Round(2)
		credit := decimal.NewFromFloat(req.Credit).Round(2)
		if credit.GreaterThan(amount) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "credit cannot exceed amount"))
			return
		}
		balance := amount.Sub(credit)

		created, err := repository.Create(r.Context(), &models.Payment{
			CustomerID:      req.CustomerID,
			JobCardID:       req.JobCardID,
			Amount:          amount.InexactFloat64(),
			Credit:          credit.InexactFloat64(),
			Balance:         balance.InexactFloat64(),
			PaymentDate:     req.PaymentDate,
			Method:          method,
			ReferenceNumber: newReferenceNumber(),
			Status:          status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func PaymentUpdate(repository *repo.Repository[models.Payment], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req paymentUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.Status != nil {
			status, err := enums.ParsePaymentStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			changes["status"] = status
		}
		if req.Credit != nil {
			existing, err := repository.FindByID(r.Context(), id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if existing == nil {
				responses.WriteError(r.Context(), logg, w, errRecordNotFound())
				return
			}
			amount := decimal.NewFromFloat(existing.Amount)
			credit := decimal.NewFromFloat(*req.Credit).Round(2)
			if credit.GreaterThan(amount) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "credit cannot exceed amount"))
				return
			}
			changes["credit"] = credit.InexactFloat64()
			changes["balance"] = amount.Sub(credit).InexactFloat64()
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
