package vault

import (
	"fmt"
	"regexp"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router maps message paths to their handlers.
type Router struct {
	routes map[string]stronghold.Handler
}

var _ stronghold.Registry = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]stronghold.Handler),
	}
}

// Handle implements stronghold.Registry interface. Registering a handler for
// an invalid path or for a path that is already registered panics, as this
// is a setup time only operation.
func (r *Router) Handle(path string, h stronghold.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("handler for path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If none is found,
// it returns a handler that fails every message.
func (r *Router) Handler(path string) stronghold.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

type noSuchPathHandler struct {
	path string
}

var _ stronghold.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	return stronghold.CheckResult{}, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}

func (h noSuchPathHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	return stronghold.DeliverResult{}, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
