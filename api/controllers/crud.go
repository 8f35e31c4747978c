package controllers

import (
	"net/http"

	"github.com/autoworks/workshop-backend/api/responses"
	"github.com/autoworks/workshop-backend/api/validators"
	"github.com/autoworks/workshop-backend/internal/repo"
	pkgerrors "github.com/autoworks/workshop-backend/pkg/errors"
	"github.com/autoworks/workshop-backend/pkg/logger"
)

func errRecordNotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
}

// ListResource serves the paginated listing shared by every entity. Query
// parameters: page, limit, search_by, search_query.
func ListResource[T repo.Entity](repository *repo.Repository[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListingParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := repository.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// GetResource serves a single record by its {id} URL parameter.
func GetResource[T repo.Entity](repository *repo.Repository[T], logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := repository.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if record == nil {
			responses.WriteError(r.Context(), logg, w, errRecordNotFound())
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// DeleteResource removes a record and returns its final snapshot.
func DeleteResource[T repo.Entity](repository *repo.Repository[T], logg *logger.Logger) http.HandlerFunc {
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
