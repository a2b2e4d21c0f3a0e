package directory

import "context"

// CompanyLookup is satisfied by *Client.
type CompanyLookup interface {
	LookupCompanyId(ctx context.Context) (string, error)
}

// Resolver decides which company profile feeds question generation. An id
// on the request wins, then the configured id, then the directory.
type Resolver struct {
	fixedId string
	lookup  CompanyLookup
}

func NewResolver(fixedId string, lookup CompanyLookup) *Resolver {
	return &Resolver{fixedId: fixedId, lookup: lookup}
}

func (r *Resolver) Resolve(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if r.fixedId != "" {
		return r.fixedId, nil
	}
	return r.lookup.LookupCompanyId(ctx)
}
