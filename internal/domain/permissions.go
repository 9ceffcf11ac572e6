package domain

// DocumentAction names an operation checked against the permission matrix.
type DocumentAction string

const (
	ActionCreate     DocumentAction = "create"
	ActionEdit       DocumentAction = "edit"
	ActionSubmit     DocumentAction = "submit"
	ActionApprove    DocumentAction = "approve"
	ActionDistribute DocumentAction = "distribute"
	ActionView       DocumentAction = "view"
	ActionDelete     DocumentAction = "delete"
)

// documentPermissions is the single declarative action -> allowed-roles
// table for document control. Every mutating service operation consults it
// through Allowed before touching state.
var documentPermissions = map[DocumentAction][]UserRole{
	ActionCreate:     {RoleQMR, RoleDirector},
	ActionEdit:       {RoleQMR, RoleDirector},
	ActionSubmit:     {RoleQMR},
	ActionApprove:    {RoleQMR, RoleDirector},
	ActionDistribute: {RoleQMR, RoleDirector},
	ActionView:       {RoleDirector, RoleCDMO, RoleQMR, RoleHRAdmin, RoleSectionHead, RoleStaff},
	ActionDelete:     {RoleDirector},
}

// Allowed reports whether role may perform action. Unknown actions are
// denied.
func Allowed(role UserRole, action DocumentAction) bool {
	for _, r := range documentPermissions[action] {
		if r == role {
			return true
		}
	}
	return false
}
