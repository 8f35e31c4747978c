package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/inventory"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/enums"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

type inventoryCreateRequest struct {
	ItemName         string  `json:"item_name" validate:"required,min=1,max=255"`
	Quantity         int     `json:"quantity" validate:"min=0"`
	UnitPrice        float64 `json:"unit_price" validate:"min=0"`
	MinimumThreshold int     `json:"minimum_threshold,omitempty" validate:"omitempty,min=1"`
	Category         string  `json:"category" validate:"required"`
	SupplierIDs      []int64 `json:"supplier_ids,omitempty" validate:"omitempty,dive,min=1"`
}

type inventoryUpdateRequest struct {
	ItemName         *string  `json:"item_name,omitempty" validate:"omitempty,min=1,max=255"`
	Quantity         *int     `json:"quantity,omitempty" validate:"omitempty,min=0"`
	UnitPrice        *float64 `json:"unit_price,omitempty" validate:"omitempty,min=0"`
	MinimumThreshold *int     `json:"minimum_threshold,omitempty" validate:"omitempty,min=1"`
	Category         *string  `json:"category,omitempty"`
}

type swapSupplierRequest struct {
	PreviousSupplierID int64 `json:"previous_supplier_id" validate:"required,min=1"`
	NewSupplierID      int64 `json:"new_supplier_id" validate:"required,min=1"`
}

func InventoryCreate(repository *inventory.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inventoryCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseInventoryCategory(req.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		created, err := repository.Create(r.Context(), &models.Inventory{
			ItemName:         req.ItemName,
			Quantity:         req.Quantity,
			UnitPrice:        req.UnitPrice,
			MinimumThreshold: req.MinimumThreshold,
			Category:         category,
		}, req.SupplierIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func InventoryUpdate(repository *inventory.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req inventoryUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changes := map[string]any{}
		if req.ItemName != nil {
			changes["item_name"] = *req.ItemName
		}
		if req.Quantity != nil {
			changes["quantity"] = *req.Quantity
		}
		if req.UnitPrice != nil {
			changes["unit_price"] = *req.UnitPrice
		}
		if req.MinimumThreshold != nil {
			changes["minimum_threshold"] = *req.MinimumThreshold
		}
		if req.Category != nil {
			category, err := enums.ParseInventoryCategory(*req.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			changes["category"] = category
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

// InventorySwapSupplier repoints a single supplier link without touching any
// other association.
func InventorySwapSupplier(repository *inventory.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req swapSupplierRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		swapped, err := repository.SwapSupplier(r.Context(), id, req.PreviousSupplierID, req.NewSupplierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if swapped == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item, supplier link, or replacement supplier not found"))
			return
		}

		responses.WriteSuccess(w, swapped)
	}
}

func InventoryDelete(repository *inventory.Repository, logg *logger.Logger) http.HandlerFunc {
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
