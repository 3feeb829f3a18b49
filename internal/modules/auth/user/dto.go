package user

// CreateUserDTO is the payload for provisioning a dashboard account.
type CreateUserDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
}

func (d *CreateUserDTO) missingFields() []string {
	var missing []string
	if d.Email == "" {
		missing = append(missing, "email")
	}
	if d.Password == "" {
		missing = append(missing, "password")
	}
	if d.Name == "" {
		missing = append(missing, "name")
	}
	return missing
}

// UpdateUserDTO patches a dashboard account.
type UpdateUserDTO struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Avatar   *string `json:"avatar"`
	IsActive *bool   `json:"isActive"`
}

// AdminListQuery holds query params for the account listing.
type AdminListQuery struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

// AdminStats are aggregate counts for the account listing.
type AdminStats struct {
	Total  int64            `json:"total"`
	ByRole map[string]int64 `json:"byRole"`
	Active int64            `json:"active"`
}
