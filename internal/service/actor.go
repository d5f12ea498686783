package service

import "tailorshop/internal/model"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Role model.Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}
