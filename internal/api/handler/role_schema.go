package handler

type createRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type grantPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1"`
}
