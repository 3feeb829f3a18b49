package contact

// SubmitContactDTO is the public contact-form payload.
type SubmitContactDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (d *SubmitContactDTO) missingFields() []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Email == "" {
		missing = append(missing, "email")
	}
	if d.Subject == "" {
		missing = append(missing, "subject")
	}
	if d.Message == "" {
		missing = append(missing, "message")
	}
	return missing
}

// UpdateStatusDTO moves a submission through its triage lifecycle.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

// AdminListQuery holds query params for the inbox listing.
type AdminListQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

// AdminStats are aggregate counts for the inbox badges.
type AdminStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}
