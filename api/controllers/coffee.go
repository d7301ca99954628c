package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/personal/coffee-catalog-backend/api/responses"
	"github.com/personal/coffee-catalog-backend/api/validators"
	"github.com/personal/coffee-catalog-backend/internal/coffees"
	pkgerrors "github.com/personal/coffee-catalog-backend/pkg/errors"
	"github.com/personal/coffee-catalog-backend/pkg/logger"
	"github.com/personal/coffee-catalog-backend/pkg/pagination"
)

// ListCoffees returns one page of active catalog items.
func ListCoffees(svc coffees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInternal, "coffee service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		page, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, page, "coffees retrieved")
	}
}

// GetCoffee returns a single active catalog item by id.
func GetCoffee(svc coffees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInternal, "coffee service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "coffee")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		coffee, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, coffee, "coffee retrieved")
	}
}

// CreateCoffee persists a new catalog item.
func CreateCoffee(svc coffees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInternal, "coffee service unavailable"))
			return
		}

		var body coffees.CreateCoffeeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		created, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, created, "coffee created")
	}
}

// UpdateCoffee applies a partial update to a catalog item.
func UpdateCoffee(svc coffees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInternal, "coffee service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "coffee")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var body coffees.UpdateCoffeeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, updated, "coffee updated")
	}
}

// DeactivateCoffee flips isActive to false, hiding the item from reads.
func DeactivateCoffee(svc coffees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInternal, "coffee service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "coffee")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		deactivated, err := svc.Deactivate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, deactivated, "coffee deactivated")
	}
}

// DeleteCoffee permanently removes a catalog item and returns the last-known
// representation.
func DeleteCoffee(svc coffees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInternal, "coffee service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "id"), "coffee")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		removed, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, removed, "coffee deleted")
	}
}

func parseListInput(r *http.Request) (coffees.ListInput, error) {
	page, err := validators.ParseQueryInt(r, "page", 0, 0, 1<<30)
	if err != nil {
		return coffees.ListInput{}, err
	}
	size, err := validators.ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
	if err != nil {
		return coffees.ListInput{}, err
	}
	sort, err := pagination.ParseSort(r.URL.Query().Get("sort"), coffees.SortableFields, coffees.DefaultSortField)
	if err != nil {
		return coffees.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort expression")
	}
	minPrice, err := validators.ParseQueryDecimal(r, "minPrice")
	if err != nil {
		return coffees.ListInput{}, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "maxPrice")
	if err != nil {
		return coffees.ListInput{}, err
	}

	return coffees.ListInput{
		Filters: coffees.ListFilters{
			Name:          r.URL.Query().Get("name"),
			OriginCountry: r.URL.Query().Get("originCountry"),
			RoastLevel:    r.URL.Query().Get("roastLevel"),
			MinPrice:      minPrice,
			MaxPrice:      maxPrice,
		},
		Pagination: pagination.Params{Page: page, Size: size, Sort: sort},
	}, nil
}
