package idosoms

// PermissionName is one of the enumerated application capabilities
type PermissionName = string

const (
	PermCreateUser            PermissionName = "create_user"
	PermManageUsers           PermissionName = "manage_users"
	PermDeleteUser            PermissionName = "delete_user"
	PermCreatePatient         PermissionName = "create_patient"
	PermViewAllMunicipalities PermissionName = "view_all_municipalities"
	PermExportData            PermissionName = "export_data"
	PermManageParameters      PermissionName = "manage_parameters"
)

// permissionRoles is the static allow-list. The table is total: every
// PermissionName is defined here and every role not listed is denied. It is
// not configurable at runtime.
var permissionRoles = map[PermissionName][]UserRole{
	PermCreateUser:            {RoleSuperAdmin, RoleAdmin, RoleCoord},
	PermManageUsers:           {RoleSuperAdmin, RoleAdmin, RoleCoord},
	PermDeleteUser:            {RoleSuperAdmin, RoleAdmin},
	PermCreatePatient:         {RoleSuperAdmin, RoleAdmin, RoleCoord, RoleAgente},
	PermViewAllMunicipalities: {RoleSuperAdmin, RoleAdmin},
	PermExportData:            {RoleSuperAdmin, RoleAdmin, RoleCoord},
	PermManageParameters:      {RoleSuperAdmin, RoleAdmin},
}

// AllPermissions returns every defined permission name.
func AllPermissions() []PermissionName {
	out := make([]PermissionName, 0, len(permissionRoles))
	for name := range permissionRoles {
		out = append(out, name)
	}
	return out
}

// RoleHasPermission reports membership of role in the allow-list for name.
// Unknown permission names are always denied.
func RoleHasPermission(role UserRole, name PermissionName) bool {
	allowed, ok := permissionRoles[name]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// RoleCanAccessMunicipality applies the region rule: superadmin and admin
// access every municipality, every other role only its own assigned code.
// Exact string equality, no hierarchy; an empty own code grants nothing.
func RoleCanAccessMunicipality(role UserRole, own, requested string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin:
		return true
	}
	return own != "" && own == requested
}
