package models

import (
	"strings"

	"renovation-crm/internal/validation"
)

// ClientDraft is the payload for a new client. IndividualDraft and CompanyDraft
// are the only implementations; the unexported method keeps the set closed.
type ClientDraft interface {
	Type() ClientType
	Validate() error
	build(c *Client)
}

type AddressParts struct {
	PostalCode string
	Settlement string
	Street     string
	// FreeText is the legacy single-line address, used when the parts are empty.
	FreeText string
}

type Billing struct {
	SameAsAddress bool
	Name          string
	Address       string
	TaxNumber     string
}

// DefaultBilling bills to the client's own address.
func DefaultBilling() Billing {
	return Billing{SameAsAddress: true}
}

type ContactPerson struct {
	LastName  string `json:"contactLastName" binding:"notblank"`
	FirstName string `json:"contactFirstName" binding:"notblank"`
	Phone     string `json:"contactPhone" binding:"notblank"`
	Email     string `json:"contactEmail" binding:"notblank,email"`
}

type IndividualDraft struct {
	LastName  string `json:"lastName" binding:"notblank"`
	FirstName string `json:"firstName" binding:"notblank"`
	Phone     string `json:"phone" binding:"notblank"`
	Email     string `json:"email" binding:"notblank,email"`

	Address          AddressParts
	Billing          Billing
	SubscribeConsent bool
}

func (d IndividualDraft) Type() ClientType { return ClientIndividual }

func (d IndividualDraft) Validate() error { return validation.Struct(d) }

func (d IndividualDraft) build(c *Client) {
	c.LastName = strings.TrimSpace(d.LastName)
	c.FirstName = strings.TrimSpace(d.FirstName)
	c.Name = PersonName(d.LastName, d.FirstName)
	c.Phone = strings.TrimSpace(d.Phone)
	c.Email = strings.TrimSpace(d.Email)
	applyAddress(c, d.Address)
	applyBilling(c, d.Billing)
	c.SubscribeConsent = d.SubscribeConsent
}

type CompanyDraft struct {
	Name      string `json:"name" binding:"notblank"`
	Phone     string `json:"phone" binding:"notblank"`
	Email     string `json:"email" binding:"notblank,email"`
	TaxNumber string `json:"taxNumber"`
	Contact   ContactPerson

	Address          AddressParts
	Billing          Billing
	SubscribeConsent bool
}

func (d CompanyDraft) Type() ClientType { return ClientCompany }

func (d CompanyDraft) Validate() error { return validation.Struct(d) }

func (d CompanyDraft) build(c *Client) {
	c.Name = strings.TrimSpace(d.Name)
	c.Phone = strings.TrimSpace(d.Phone)
	c.Email = strings.TrimSpace(d.Email)
	c.TaxNumber = strings.TrimSpace(d.TaxNumber)
	c.ContactLastName = strings.TrimSpace(d.Contact.LastName)
	c.ContactFirstName = strings.TrimSpace(d.Contact.FirstName)
	c.ContactName = PersonName(d.Contact.LastName, d.Contact.FirstName)
	c.ContactPhone = strings.TrimSpace(d.Contact.Phone)
	c.ContactEmail = strings.TrimSpace(d.Contact.Email)
	applyAddress(c, d.Address)
	applyBilling(c, d.Billing)
	c.SubscribeConsent = d.SubscribeConsent
}

// NewClient validates the draft and returns the row to insert.
func NewClient(d ClientDraft, status string, source ClientSource) (Client, error) {
	if err := d.Validate(); err != nil {
		return Client{}, err
	}
	c := Client{
		ClientType: d.Type(),
		Status:     status,
		Source:     source,
	}
	d.build(&c)
	return c, nil
}

func applyAddress(c *Client, a AddressParts) {
	c.PostalCode = strings.TrimSpace(a.PostalCode)
	c.Settlement = strings.TrimSpace(a.Settlement)
	c.StreetAddress = strings.TrimSpace(a.Street)
	c.Address = ComposeAddress(a.PostalCode, a.Settlement, a.Street, a.FreeText)
}

func applyBilling(c *Client, b Billing) {
	c.BillingSameAsAddress = b.SameAsAddress
	c.BillingName = strings.TrimSpace(b.Name)
	c.BillingAddress = strings.TrimSpace(b.Address)
	c.BillingTaxNumber = strings.TrimSpace(b.TaxNumber)
}
