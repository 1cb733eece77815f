package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tradelink-ops/logistics-backend/shared/utils"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// entityService is the read/write surface a resource route needs
type entityService[R any, K comparable] interface {
	List(ctx context.Context, opts repository.ListOptions) ([]R, error)
	Get(ctx context.Context, key K) (R, error)
	Create(ctx context.Context, in repository.InsertShape[R]) (R, error)
	Update(ctx context.Context, key K, in repository.UpdateShape) (R, error)
}

// resource serves the collection and by-key routes of one entity. I and U are
// the entity's insert and update payloads.
type resource[R any, K comparable, I repository.InsertShape[R], U repository.UpdateShape] struct {
	service entityService[R, K]
	key     func(r *http.Request) (K, error)
	// update replaces service.Update when set
	update func(r *http.Request, key K, in U) (R, error)
}

// mount registers GET/POST on the collection and GET/PUT/PATCH on keyPattern
func mount[R any, K comparable, I repository.InsertShape[R], U repository.UpdateShape](r chi.Router, keyPattern string, res resource[R, K, I, U]) {
	r.Get("/", res.list)
	r.Post("/", res.create)
	r.Get(keyPattern, res.get)
	r.Put(keyPattern, res.put)
	r.Patch(keyPattern, res.put)
}

func (res resource[R, K, I, U]) list(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := res.service.List(r.Context(), opts)
	respondList(w, r, rows, err)
}

func (res resource[R, K, I, U]) get(w http.ResponseWriter, r *http.Request) {
	key, err := res.key(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, err := res.service.Get(r.Context(), key)
	respond(w, r, http.StatusOK, row, err)
}

func (res resource[R, K, I, U]) create(w http.ResponseWriter, r *http.Request) {
	var in I
	if err := utils.DecodeStrict(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, err := res.service.Create(r.Context(), in)
	respond(w, r, http.StatusCreated, row, err)
}

func (res resource[R, K, I, U]) put(w http.ResponseWriter, r *http.Request) {
	key, err := res.key(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in U
	if err := utils.DecodeStrict(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var row R
	if res.update != nil {
		row, err = res.update(r, key, in)
	} else {
		row, err = res.service.Update(r.Context(), key, in)
	}
	respond(w, r, http.StatusOK, row, err)
}

// intParam parses a numeric path parameter
func intParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

func intKey(name string) func(*http.Request) (int64, error) {
	return func(r *http.Request) (int64, error) { return intParam(r, name) }
}

func stringKey(name string) func(*http.Request) (string, error) {
	return func(r *http.Request) (string, error) { return chi.URLParam(r, name), nil }
}
