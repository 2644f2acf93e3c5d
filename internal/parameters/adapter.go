package parameters

import (
	"fmt"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/routes"
)

// Adapter renders parameters as JSON:API resources.
type Adapter struct {
	links *routes.Links
}

// NewAdapter creates an adapter resolving self links through links.
// A nil links table omits self links.
func NewAdapter(links *routes.Links) *Adapter {
	return &Adapter{links: links}
}

func (a *Adapter) Resource(p Parameter, q *jsonapi.Query) (*jsonapi.Resource, error) {
	if p.Key == "" || p.Value == nil {
		return nil, fmt.Errorf("%w: record is not a parameter", jsonapi.ErrInvalidData)
	}

	res := jsonapi.NewResource(Type, p.Key)

	if a.links != nil {
		self, err := a.links.URL(DetailRoute, "id", p.Key)
		if err != nil {
			return nil, err
		}
		res.SetLink("self", self)
	}

	if q.IsFieldRequested(Type, AttrKey) {
		res.SetAttribute(AttrKey, p.Key)
	}
	if q.IsFieldRequested(Type, AttrValue) {
		res.SetAttribute(AttrValue, p.Value)
	}

	return res, nil
}
