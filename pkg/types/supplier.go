package types

import "strings"

// Supplier is the vendor record embedded on an inventory item. Only the name
// is mandatory; the remaining contact fields are optional.
type Supplier struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Address       string `json:"address,omitempty"`
	GSTNumber     string `json:"gst_number,omitempty"`
}

// Normalize trims whitespace from every field.
func (s Supplier) Normalize() Supplier {
	return Supplier{
		Name:          strings.TrimSpace(s.Name),
		ContactPerson: strings.TrimSpace(s.ContactPerson),
		Phone:         strings.TrimSpace(s.Phone),
		Email:         strings.TrimSpace(s.Email),
		Address:       strings.TrimSpace(s.Address),
		GSTNumber:     strings.TrimSpace(s.GSTNumber),
	}
}
