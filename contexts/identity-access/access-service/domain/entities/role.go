package entities

// Role is the single role resolved for a principal at authentication time.
// Operations gate on explicit role sets, not on a rank comparison.
type Role string

const (
	RoleAuthor    Role = "Author"
	RoleEditor    Role = "Editor"
	RoleApprover  Role = "Approver"
	RolePublisher Role = "Publisher"
	RoleAdmin     Role = "Admin"
)

func IsSupportedRole(value Role) bool {
	switch value {
	case RoleAuthor, RoleEditor, RoleApprover, RolePublisher, RoleAdmin:
		return true
	default:
		return false
	}
}
