// Package views holds the page bindings: presentational renderers over
// store state plus the form handling each page does before dispatching a
// slice operation. Rendering is plain text; a failed slice shows an inline
// error and the page stays interactive with entered values intact.
package views

import (
	"fmt"
	"sync"

	"storefront/internal/store"

	"github.com/go-playground/validator/v10"
)

// Pages binds the store to the page renderers and tracks the current
// client-side location. Navigate is the "router": the gateway's 401 hook
// points here to force the login entry point.
type Pages struct {
	store    *store.Store
	validate *validator.Validate

	mu        sync.RWMutex
	loginPath string
	path      string
}

// New creates the page bindings starting at "/".
func New(st *store.Store, loginPath string) *Pages {
	return &Pages{
		store:     st,
		validate:  validator.New(),
		loginPath: loginPath,
		path:      "/",
	}
}

// Navigate sets the current client-side location.
func (p *Pages) Navigate(path string) {
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
}

// Path returns the current client-side location.
func (p *Pages) Path() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.path
}

// ForceLogin is installed as the gateway's unauthorized hook: a hard
// client-side redirect to the login entry point.
func (p *Pages) ForceLogin() {
	p.Navigate(p.loginPath)
}

// fieldErrors flattens validator errors into one message per field.
func fieldErrors(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["form"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return messages
}
