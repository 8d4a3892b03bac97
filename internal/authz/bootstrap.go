package authz

import (
	"fmt"

	"github.com/naseej-app/internal/constants"
)

// RoleSeed is one built-in role with its default policies.
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds is the default policy matrix for the five built-in
// roles. Paths are relative to /api/v1; :id matches one segment.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleManager,
			Policies: []Policy{
				{Object: "/requests", Action: "GET"},
				{Object: "/requests/history", Action: "GET"},
				{Object: "/requests/:id", Action: "GET"},
				{Object: "/requests/:id/approve", Action: "PUT"},
				{Object: "/requests/:id/reject", Action: "PUT"},
				{Object: "/requests/:id/prepare", Action: "PUT"},
				{Object: "/requests/:id/ready", Action: "PUT"},
				{Object: "/requests/:id/dispatch", Action: "PUT"},
				{Object: "/requests/:id/complete", Action: "PUT"},
				{Object: "/items", Action: "GET"},
				{Object: "/items/:id", Action: "GET"},
				{Object: "/items/:id/status", Action: "PATCH"},
				{Object: "/items/:id/assign", Action: "PATCH"},
				{Object: "/dashboard/overview", Action: "GET"},
			},
		},
		{
			Role: constants.RoleWorker,
			Policies: []Policy{
				{Object: "/requests", Action: "GET"},
				{Object: "/requests/history", Action: "GET"},
				{Object: "/requests/:id", Action: "GET"},
				{Object: "/requests/:id/prepare", Action: "PUT"},
				{Object: "/requests/:id/ready", Action: "PUT"},
				{Object: "/items", Action: "GET"},
				{Object: "/items/:id", Action: "GET"},
				{Object: "/items/:id/status", Action: "PATCH"},
			},
		},
		{
			Role: constants.RoleDriver,
			Policies: []Policy{
				{Object: "/requests", Action: "GET"},
				{Object: "/requests/history", Action: "GET"},
				{Object: "/requests/:id", Action: "GET"},
				{Object: "/requests/:id/deliver", Action: "PUT"},
				{Object: "/requests/:id/complete", Action: "PUT"},
				{Object: "/items", Action: "GET"},
				{Object: "/items/:id", Action: "GET"},
				{Object: "/items/:id/status", Action: "PATCH"},
			},
		},
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/requests", Action: "GET"},
				{Object: "/requests", Action: "POST"},
				{Object: "/requests/history", Action: "GET"},
				{Object: "/requests/:id", Action: "GET"},
				{Object: "/requests/:id/cancel", Action: "PUT"},
				{Object: "/requests/:id/notes", Action: "PUT"},
			},
		},
	}
}

// BootstrapBuiltinRoles installs the default policy matrix. Existing rules
// are left alone so operator edits survive restarts.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
