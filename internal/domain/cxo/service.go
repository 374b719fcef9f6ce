package cxo

import "context"

type CXOService interface {
	Add(ctx context.Context, email, name, title string) (CXO, error)
	List(ctx context.Context) ([]CXO, error)
	Remove(ctx context.Context, id int64) error
	// EmailSet returns lower-cased CXO emails for annotation lookups.
	EmailSet(ctx context.Context) (map[string]struct{}, error)
}
