package services

import "vellum/contexts/identity-access/access-service/domain/entities"

// Allowed reports whether role is in the operation's explicit allow list.
// Role sets are whitelists per operation; there is no ordering inference.
func Allowed(role entities.Role, allowed ...entities.Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

// CanEditContent is the edit-permission oracle: the content author can always
// edit their own item, and Editor, Approver, Publisher and Admin can edit any.
func CanEditContent(userID string, role entities.Role, authorID string) bool {
	if userID != "" && userID == authorID {
		return true
	}
	return Allowed(role, entities.RoleEditor, entities.RoleApprover, entities.RolePublisher, entities.RoleAdmin)
}
