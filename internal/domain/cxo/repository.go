package cxo

import "context"

type CXORepository interface {
	Create(ctx context.Context, entry *CXO) error
	List(ctx context.Context) ([]CXO, error)
	GetByEmail(ctx context.Context, email string) (CXO, error)
	Delete(ctx context.Context, id int64) error
}
