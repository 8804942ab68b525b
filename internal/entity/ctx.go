package entity

import (
	"context"
)

type CtxKey int

const (
	CtxKeyAdmin CtxKey = iota
)

func CtxWithAdmin(ctx context.Context, admin Admin) context.Context {
	return context.WithValue(ctx, CtxKeyAdmin, admin)
}

// AdminFromCtx returns the authenticated admin from context or
// ErrUnauthenticated if none is set.
func AdminFromCtx(ctx context.Context) (Admin, error) {
	admin, ok := ctx.Value(CtxKeyAdmin).(Admin)
	if !ok {
		return admin, ErrUnauthenticated
	}

	return admin, nil
}
