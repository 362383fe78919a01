package http

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type UserSummary struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role,omitempty"`
	CreatedAt    string `json:"created_at"`
	LastSignInAt string `json:"last_sign_in_at,omitempty"`
}

type ListUsersResponse struct {
	Users []UserSummary `json:"users"`
}

type AssignRoleRequest struct {
	Role string `json:"role"`
}

type AssignRoleResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}
