// Package graph serves the catalog over GraphQL. Each Query and Mutation
// field resolves to one CatalogService operation.
package graph

import (
	"context"
	"errors"

	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/service"
)

// Resolver is the root resolver for both the Query and the Mutation type.
type Resolver struct {
	svc service.ICatalogService
	log logging.Logger
}

func NewResolver(svc service.ICatalogService, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Discard()
	}
	return &Resolver{svc: svc, log: log.With("component", "graph")}
}

// Error codes reported in the extensions of a GraphQL error.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeBadInput     = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL"
)

// resolverError carries a client-facing message and code.
type resolverError struct {
	msg  string
	code string
}

func (e *resolverError) Error() string {
	return e.msg
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// fail converts a service error for the client. Named conditions keep their
// message; anything else is logged and reported as an internal error.
func (r *Resolver) fail(ctx context.Context, op string, err error) error {
	var code string
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = CodeNotFound
	case errors.Is(err, service.ErrConflict):
		code = CodeConflict
	case errors.Is(err, service.ErrPrecondition):
		code = CodePrecondition
	case errors.Is(err, service.ErrInvalid):
		code = CodeBadInput
	default:
		r.log.Error(ctx, "operation failed", "operation", op, "error", err)
		return &resolverError{msg: "internal server error", code: CodeInternal}
	}
	return &resolverError{msg: err.Error(), code: code}
}
