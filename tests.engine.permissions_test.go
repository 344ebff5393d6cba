package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestParseIdentity ensures `user@machine` values are parsed into identities.
func TestParseIdentity(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected Identity
	}{
		{
			"valid identity",
			"jerome@laptop",
			Identity{Name: "jerome", Host: "laptop"},
		},
		{
			"valid identity with spaces",
			"  jerome@laptop  ",
			Identity{Name: "jerome", Host: "laptop"},
		},
		{
			"empty value",
			"",
			Identity{Anonymous: true},
		},
		{
			"missing separator",
			"jerome",
			Identity{Anonymous: true},
		},
		{
			"missing host",
			"jerome@",
			Identity{Anonymous: true},
		},
		{
			"missing name",
			"@laptop",
			Identity{Anonymous: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseIdentity(tc.value))
		})
	}
}

// TestIdentityString ensures identities render under the `user@machine` pattern.
func TestIdentityString(t *testing.T) {
	assert.Equal(t, "jerome@laptop", Identity{Name: "jerome", Host: "laptop"}.String())
	assert.Equal(t, "<anonymous>", Identity{Anonymous: true}.String())
}

// TestClaimsAuthorizer_Authorize ensures the configuration-driven grants.
func TestClaimsAuthorizer_Authorize(t *testing.T) {
	claim := BookEntity + "." + ReadCommand

	t.Run("anonymous denied by default", func(t *testing.T) {
		ca := NewClaimsAuthorizer(zap.NewNop(), &SecurityConfig{})
		err := ca.Authorize(context.Background(), Identity{Anonymous: true}, claim)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("anonymous allowed with bypass", func(t *testing.T) {
		ca := NewClaimsAuthorizer(zap.NewNop(), &SecurityConfig{AllClaimsForAnonymous: true})
		err := ca.Authorize(context.Background(), Identity{Anonymous: true}, claim)
		assert.NoError(t, err)
	})

	t.Run("unregistered user rejected", func(t *testing.T) {
		ca := NewClaimsAuthorizer(zap.NewNop(), &SecurityConfig{
			AllClaimsForUsers: []string{"jerome@laptop"},
		})
		err := ca.Authorize(context.Background(), Identity{Name: "intruder", Host: "laptop"}, claim)
		assert.ErrorIs(t, err, ErrUserNotRegistered)
		assert.ErrorContains(t, err, "user is not registered")
	})

	t.Run("registered user granted", func(t *testing.T) {
		ca := NewClaimsAuthorizer(zap.NewNop(), &SecurityConfig{
			AllClaimsForUsers: []string{"jerome@laptop", " marc@desktop "},
		})
		assert.NoError(t, ca.Authorize(context.Background(), Identity{Name: "jerome", Host: "laptop"}, claim))
		assert.NoError(t, ca.Authorize(context.Background(), Identity{Name: "marc", Host: "desktop"}, claim))
	})
}

// TestClaimsAuthorizer_Registered ensures the users list lookup.
func TestClaimsAuthorizer_Registered(t *testing.T) {
	ca := NewClaimsAuthorizer(zap.NewNop(), &SecurityConfig{
		AllClaimsForUsers: []string{"jerome@laptop", ""},
	})
	assert.True(t, ca.Registered(Identity{Name: "jerome", Host: "laptop"}))
	assert.False(t, ca.Registered(Identity{Name: "intruder", Host: "laptop"}))
	assert.False(t, ca.Registered(Identity{Anonymous: true}))
}
