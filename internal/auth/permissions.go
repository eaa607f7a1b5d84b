package auth

import "strings"

// routeRoles maps API path prefixes to the roles allowed to call them.
// The longest matching prefix wins. Admin passes everywhere.
var routeRoles = map[string][]UserRole{
	"/api/dashboard": {RoleStaff, RoleAccounts, RolePurchaser, RoleDispatcher},
	"/api/orders":    {RoleStaff, RolePurchaser, RoleAccounts},
	"/api/banks":     {RoleStaff, RoleAccounts},
	"/api/shipments": {RoleStaff, RoleDispatcher},
	"/api/invoices":  {RoleAccounts},
}

func RolesForAPI(path string) []UserRole {
	var bestPath string
	var bestRoles []UserRole
	for prefix, roles := range routeRoles {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if bestRoles == nil || len(prefix) > len(bestPath) {
			bestPath = prefix
			bestRoles = roles
		}
	}
	return bestRoles
}

func RoleAllowed(role UserRole, path string) bool {
	if role == RoleAdmin {
		return true
	}
	allowed := RolesForAPI(path)
	if allowed == nil {
		return false
	}
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
