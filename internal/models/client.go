package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientType string
type ClientSource string

const (
	ClientIndividual ClientType = "individual"
	ClientCompany    ClientType = "company"

	SourceManual   ClientSource = "manual"
	SourceCallback ClientSource = "callback"
)

// ParseClientType maps the wire value to a ClientType. Empty means individual;
// the Hungarian values of the old frontend are still accepted.
func ParseClientType(s string) (ClientType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "individual", "maganszemely":
		return ClientIndividual, true
	case "company", "ceges":
		return ClientCompany, true
	}
	return "", false
}

// Client is one row for both individual and company customers.
// Individuals use LastName/FirstName, companies use Name plus the Contact* block.
type Client struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	ClientType ClientType `gorm:"type:varchar(20);not null" json:"clientType"`

	Name      string `gorm:"size:255;not null" json:"name"`
	LastName  string `gorm:"size:120" json:"lastName"`
	FirstName string `gorm:"size:120" json:"firstName"`

	Address       string `gorm:"size:500" json:"address"`
	PostalCode    string `gorm:"size:10" json:"postalCode,omitempty"`
	Settlement    string `gorm:"size:120" json:"settlement,omitempty"`
	StreetAddress string `gorm:"size:255" json:"streetAddress,omitempty"`

	Phone string `gorm:"size:50;not null" json:"phone"`
	Email string `gorm:"size:255;not null" json:"email"`

	Status string       `gorm:"size:100;not null" json:"status"`
	Source ClientSource `gorm:"type:varchar(20);not null" json:"source"`

	TaxNumber string `gorm:"size:50" json:"taxNumber,omitempty"`

	ContactLastName  string `gorm:"size:120" json:"contactLastName,omitempty"`
	ContactFirstName string `gorm:"size:120" json:"contactFirstName,omitempty"`
	ContactName      string `gorm:"size:255" json:"contactName,omitempty"`
	ContactPhone     string `gorm:"size:50" json:"contactPhone,omitempty"`
	ContactEmail     string `gorm:"size:255" json:"contactEmail,omitempty"`

	SubscribeConsent bool `gorm:"not null;default:false" json:"subscribeConsent"`

	BillingSameAsAddress bool   `gorm:"not null" json:"billingSameAsAddress"`
	BillingName          string `gorm:"size:255" json:"billingName,omitempty"`
	BillingAddress       string `gorm:"size:500" json:"billingAddress,omitempty"`
	BillingTaxNumber     string `gorm:"size:50" json:"billingTaxNumber,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Processes []Process `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Projects  []Project `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ComposeAddress joins the non-empty split address parts. When all parts are
// empty the legacy free-text address is returned unchanged.
func ComposeAddress(postalCode, settlement, street, fallback string) string {
	var parts []string
	for _, p := range []string{postalCode, settlement, street} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(fallback)
	}
	return strings.Join(parts, ", ")
}

// PersonName is "last first", trimmed; used for individuals and contact persons.
func PersonName(last, first string) string {
	return strings.TrimSpace(strings.TrimSpace(last) + " " + strings.TrimSpace(first))
}
