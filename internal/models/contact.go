package models

// Contact submission statuses.
const (
	ContactNew     = "new"
	ContactRead    = "read"
	ContactReplied = "replied"
)

// ContactModel is an inbound contact-form submission. Not a content
// document: no slug, author or engagement counters, just capture-and-list.
type ContactModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null;index"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"type:longtext"`
	Status  string `json:"status"  gorm:"default:new;index"`
}

func (ContactModel) TableName() string { return "contacts" }
