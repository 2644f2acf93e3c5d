package caches

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/routes"
)

// Handler serves the caches resource.
type Handler struct {
	sys        System
	adapter    jsonapi.Adapter[Cache]
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, adapter jsonapi.Adapter[Cache], logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		adapter:    adapter,
		logger:     logger,
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/caches",
		Tags:        []string{"Caches"},
		Description: "Runtime cache control",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "PATCH", Pattern: "", Handler: h.UpdateBulk, OpenAPI: Spec.UpdateBulk},
			{Name: DetailRoute, Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "POST", Pattern: "/{id}/warm", Handler: h.Warm, OpenAPI: Spec.Warm},
			{Method: "POST", Pattern: "/{id}/clear", Handler: h.Clear, OpenAPI: Spec.Clear},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, errs := jsonapi.ParseQuery(r.URL.Query(), h.pagination)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	page, err := h.sys.List(r.Context(), q)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	resources, err := jsonapi.Resources(h.adapter, page.Data, q)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	doc := jsonapi.CollectionDocument(resources, *page, jsonapi.RequestURL(r))
	jsonapi.Respond(w, http.StatusOK, doc, false)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	q, errs := jsonapi.ParseQuery(r.URL.Query(), h.pagination)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	cache, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.respondError(w, id, err)
		return
	}

	res, err := h.adapter.Resource(*cache, q)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	jsonapi.Respond(w, http.StatusOK, &jsonapi.Document{Data: res}, false)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, r.PathValue("id"), false)
}

func (h *Handler) UpdateBulk(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "", true)
}

func (h *Handler) Warm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sys.Warm(r.Context(), id); err != nil {
		h.respondError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sys.Clear(r.Context(), id); err != nil {
		h.respondError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id string, allowBulk bool) {
	q, errs := jsonapi.ParseQuery(r.URL.Query(), h.pagination)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	req, errs := jsonapi.DecodeRequest(r, allowBulk)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	cmds := make([]UpdateCommand, 0, len(req.Data))
	for i, obj := range req.Data {
		index := req.Index(i)
		errs.Append(jsonapi.CheckIdentity(obj, Type, id, index))

		target := id
		if target == "" {
			target = obj.ID
		}
		cmds = append(cmds, UpdateCommand{
			Index:      index,
			ID:         target,
			Attributes: obj.Attributes,
		})
	}
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	updated, err := h.sys.Update(r.Context(), cmds)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	resources, err := jsonapi.Resources(h.adapter, updated, q)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	doc := &jsonapi.Document{Data: resources}
	if !req.IsArray() {
		doc.Data = resources[0]
	}
	jsonapi.Respond(w, http.StatusOK, doc, req.Bulk)
}

func (h *Handler) respondError(w http.ResponseWriter, id string, err error) {
	if MapHTTPStatus(err) == http.StatusNotFound {
		jsonapi.RespondErrors(w, h.logger, jsonapi.Errors{jsonapi.ResourceNotFound(Type, id)})
		return
	}
	jsonapi.RespondError(w, h.logger, err)
}
