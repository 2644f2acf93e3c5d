package caches

import (
	"fmt"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/routes"
)

// Adapter renders Cache records as JSON:API resources.
type Adapter struct {
	links *routes.Links
}

// NewAdapter creates an adapter resolving self links through links.
// A nil links table omits self links.
func NewAdapter(links *routes.Links) *Adapter {
	return &Adapter{links: links}
}

func (a *Adapter) Resource(c Cache, q *jsonapi.Query) (*jsonapi.Resource, error) {
	if c.Name == "" || c.ID == "" {
		return nil, fmt.Errorf("%w: record is not a cache control", jsonapi.ErrInvalidData)
	}

	res := jsonapi.NewResource(Type, c.ID)

	if a.links != nil {
		self, err := a.links.URL(DetailRoute, "id", c.ID)
		if err != nil {
			return nil, err
		}
		res.SetLink("self", self)
	}

	if q.IsFieldRequested(Type, AttrName) {
		res.SetAttribute(AttrName, c.Name)
	}
	if q.IsFieldRequested(Type, AttrIsLocked) {
		res.SetAttribute(AttrIsLocked, c.IsLocked)
	}
	if q.IsFieldRequested(Type, AttrIsEnabled) {
		res.SetAttribute(AttrIsEnabled, c.IsEnabled)
	}

	return res, nil
}
