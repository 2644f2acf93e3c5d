package parameters

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/routes"
)

// Handler serves the parameters resource.
type Handler struct {
	sys        System
	adapter    jsonapi.Adapter[Parameter]
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, adapter jsonapi.Adapter[Parameter], logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		adapter:    adapter,
		logger:     logger,
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/parameters",
		Tags:        []string{"Parameters"},
		Description: "Key/value configuration parameters",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "PATCH", Pattern: "", Handler: h.UpdateBulk, OpenAPI: Spec.UpdateBulk},
			{Method: "DELETE", Pattern: "", Handler: h.DeleteBulk, OpenAPI: Spec.DeleteBulk},
			{Name: DetailRoute, Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
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
	key := r.PathValue("id")

	q, errs := jsonapi.ParseQuery(r.URL.Query(), h.pagination)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	p, err := h.sys.Find(r.Context(), key)
	if err != nil {
		h.respondError(w, key, err)
		return
	}

	res, err := h.adapter.Resource(*p, q)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	jsonapi.Respond(w, http.StatusOK, &jsonapi.Document{Data: res}, false)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	q, errs := jsonapi.ParseQuery(r.URL.Query(), h.pagination)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	req, errs := jsonapi.DecodeRequest(r, true)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	cmds := make([]Command, 0, len(req.Data))
	for i, obj := range req.Data {
		index := req.Index(i)
		if obj.Type != Type {
			errs.Add(jsonapi.TypeMismatch(Type, obj.Type, index))
		}
		cmds = append(cmds, Command{
			Index:      index,
			Attributes: createAttributes(obj),
		})
	}
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	created, err := h.sys.Create(r.Context(), cmds)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	resources, err := jsonapi.Resources(h.adapter, created, q)
	if err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}

	doc := &jsonapi.Document{Data: resources}
	if !req.IsArray() {
		doc.Data = resources[0]
		if self, ok := resources[0].Links["self"]; ok {
			w.Header().Set("Location", self)
		}
	}
	jsonapi.Respond(w, http.StatusCreated, doc, req.Bulk)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, r.PathValue("id"), false)
}

func (h *Handler) UpdateBulk(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "", true)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("id")
	cmds := []Command{{Index: jsonapi.Single, ID: key}}

	if err := h.sys.Delete(r.Context(), cmds); err != nil {
		jsonapi.RespondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteBulk(w http.ResponseWriter, r *http.Request) {
	req, errs := jsonapi.DecodeRequest(r, true)
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	cmds := make([]Command, 0, len(req.Data))
	for i, obj := range req.Data {
		index := req.Index(i)
		errs.Append(jsonapi.CheckIdentity(obj, Type, "", index))
		cmds = append(cmds, Command{Index: index, ID: obj.Identifier().ID})
	}
	if !errs.Empty() {
		jsonapi.RespondErrors(w, h.logger, errs)
		return
	}

	if err := h.sys.Delete(r.Context(), cmds); err != nil {
		jsonapi.RespondError(w, h.logger, err)
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

	cmds := make([]Command, 0, len(req.Data))
	for i, obj := range req.Data {
		index := req.Index(i)
		errs.Append(jsonapi.CheckIdentity(obj, Type, id, index))

		target := id
		if target == "" {
			target = obj.ID
		}
		cmds = append(cmds, Command{
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

func (h *Handler) respondError(w http.ResponseWriter, key string, err error) {
	if MapHTTPStatus(err) == http.StatusNotFound {
		jsonapi.RespondErrors(w, h.logger, jsonapi.Errors{jsonapi.ResourceNotFound(Type, key)})
		return
	}
	jsonapi.RespondError(w, h.logger, err)
}

// createAttributes takes the key from a client-generated id when the
// attributes do not carry one.
func createAttributes(obj jsonapi.ResourceObject) map[string]json.RawMessage {
	attrs := make(map[string]json.RawMessage, len(obj.Attributes)+1)
	for name, raw := range obj.Attributes {
		attrs[name] = raw
	}
	if _, ok := attrs[AttrKey]; !ok && obj.ID != "" {
		if raw, err := json.Marshal(obj.ID); err == nil {
			attrs[AttrKey] = raw
		}
	}
	return attrs
}
