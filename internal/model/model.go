// Package model holds the request, domain and response types shared by
// the handler, service and repository layers.
//
// Entity specific types live in the business and review sub-packages;
// this package keeps what both of them use (ids and pagination).
package model

// IDRequest binds a numeric {id} path parameter.
type IDRequest struct {
	ID int `param:"id" json:"-"`
}

func (r *IDRequest) Validate() error {
	return nil
}
