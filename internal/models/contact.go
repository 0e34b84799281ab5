package models

// ContactRecord is a single normalized row extracted from an uploaded
// contact file. Email is always populated; rows without a recoverable email
// address are discarded during normalization rather than kept with an empty
// string.
type ContactRecord struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// ContactList mirrors a contact list descriptor owned by the provider. The
// core only reads and implicitly creates lists, it never deletes them.
type ContactList struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	ContactsCount int    `json:"contacts_count"`
	CreatedAt     string `json:"created_at"`
	LastUpdatedAt string `json:"last_updated_at"`
}

// ContactProfile carries the optional per-contact attributes accepted by the
// provider when adding a single contact to a list.
type ContactProfile struct {
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Name            string `json:"name,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Age             *int   `json:"age,omitempty"`
	Birthday        string `json:"birthday,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address1        string `json:"address1,omitempty"`
	Address2        string `json:"address2,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Country         string `json:"country,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	Designation     string `json:"designation,omitempty"`
	Company         string `json:"company,omitempty"`
	Industry        string `json:"industry,omitempty"`
	Description     string `json:"description,omitempty"`
	AnniversaryDate string `json:"anniversary_date,omitempty"`
}

// AddContactRequest is the payload for adding one contact to a named list.
// The list is created by the provider when it does not exist yet.
type AddContactRequest struct {
	Email     string         `json:"email"`
	ListName  string         `json:"listName"`
	Data      ContactProfile `json:"data"`
	CreatedAt string         `json:"created_at,omitempty"`
	LastClick string         `json:"last_click,omitempty"`
	LastOpen  string         `json:"last_open,omitempty"`
	Timezone  string         `json:"timezone,omitempty"`
}
