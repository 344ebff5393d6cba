package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrUserNotRegistered = errors.New("user is not registered")
	ErrPermissionDenied  = errors.New("permission denied")
)

var _ Authorizer = (*ClaimsAuthorizer)(nil) // ensure ClaimsAuthorizer implements Authorizer.

// Identity is the caller identity resolved from the request.
type Identity struct {
	Name      string `json:"name"`
	Host      string `json:"host"`
	Anonymous bool   `json:"anonymous"`
}

// String renders the identity under the `user@machine` pattern.
func (id Identity) String() string {
	if id.Anonymous {
		return "<anonymous>"
	}
	return id.Name + "@" + id.Host
}

// ParseIdentity builds an identity from a `user@machine` formatted value.
// An empty or malformed value yields the anonymous identity.
func ParseIdentity(value string) Identity {
	name, host, found := strings.Cut(strings.TrimSpace(value), "@")
	if !found || len(name) == 0 || len(host) == 0 {
		return Identity{Anonymous: true}
	}
	return Identity{Name: name, Host: host}
}

// Authorizer decides if a given identity holds a given claim.
type Authorizer interface {
	Authorize(ctx context.Context, id Identity, claim string) error
	Registered(id Identity) bool
}

// ClaimsAuthorizer is a configuration-driven authorizer. The security
// toggles grant all claims either to anonymous callers or to a fixed
// list of `user@machine` identities. There is no per-claim matrix.
type ClaimsAuthorizer struct {
	logger         *zap.Logger
	allowAnonymous bool
	users          map[string]struct{}
}

// NewClaimsAuthorizer provides an authorizer backed by the security configuration.
func NewClaimsAuthorizer(logger *zap.Logger, config *SecurityConfig) *ClaimsAuthorizer {
	users := make(map[string]struct{}, len(config.AllClaimsForUsers))
	for _, user := range config.AllClaimsForUsers {
		user = strings.TrimSpace(user)
		if len(user) == 0 {
			continue
		}
		users[user] = struct{}{}
	}
	return &ClaimsAuthorizer{
		logger:         logger,
		allowAnonymous: config.AllClaimsForAnonymous,
		users:          users,
	}
}

// Registered tells if the identity is part of the configured users list.
func (ca *ClaimsAuthorizer) Registered(id Identity) bool {
	if id.Anonymous {
		return false
	}
	_, ok := ca.users[id.String()]
	return ok
}

// Authorize grants or denies the claim for the given identity. Anonymous
// callers are denied unless the anonymous bypass is on. Named callers
// which are not registered are rejected with ErrUserNotRegistered.
func (ca *ClaimsAuthorizer) Authorize(_ context.Context, id Identity, claim string) error {
	if id.Anonymous {
		if ca.allowAnonymous {
			return nil
		}
		return fmt.Errorf("claim %q: %w", claim, ErrPermissionDenied)
	}

	if !ca.Registered(id) {
		ca.logger.Warn("authorizer: rejected unregistered user",
			zap.String("user", id.String()),
			zap.String("claim", claim),
		)
		return fmt.Errorf("user %q: %w", id.String(), ErrUserNotRegistered)
	}
	return nil
}
