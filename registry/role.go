/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "fmt"

// Role classifies how a record field takes part in mapping.
type Role int

const (
	// RolePersisted fields are stored in the property map. It is the default role.
	RolePersisted Role = iota
	// RoleIdentifier marks the field holding the entity key.
	RoleIdentifier
	// RoleParentReference marks the field holding the parent key used for new entities.
	RoleParentReference
	// RoleExcluded fields are never stored and never restored.
	RoleExcluded
)

func (r Role) String() string {
	switch r {
	case RolePersisted:
		return "persisted"
	case RoleIdentifier:
		return "identifier"
	case RoleParentReference:
		return "parent"
	case RoleExcluded:
		return "excluded"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps the names returned by Role.String back to roles. The empty string is
// RolePersisted.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "persisted":
		return RolePersisted, nil
	case "identifier", "id":
		return RoleIdentifier, nil
	case "parent":
		return RoleParentReference, nil
	case "excluded", "transient":
		return RoleExcluded, nil
	}
	return 0, fmt.Errorf("unknown field role %q", s)
}
