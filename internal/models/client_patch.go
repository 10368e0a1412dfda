package models

import (
	"renovation-crm/internal/validation"
)

// ClientPatch carries only the fields the caller sent; nil means unchanged.
type ClientPatch struct {
	ClientType *string `json:"clientType"`

	Name      *string `json:"name"`
	LastName  *string `json:"lastName"`
	FirstName *string `json:"firstName"`

	Address       *string `json:"address"`
	PostalCode    *string `json:"postalCode"`
	Settlement    *string `json:"settlement"`
	StreetAddress *string `json:"streetAddress"`

	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Status *string `json:"status"`

	TaxNumber *string `json:"taxNumber"`

	ContactLastName  *string `json:"contactLastName"`
	ContactFirstName *string `json:"contactFirstName"`
	ContactName      *string `json:"contactName"`
	ContactPhone     *string `json:"contactPhone"`
	ContactEmail     *string `json:"contactEmail"`

	BillingSameAsAddress *bool   `json:"billingSameAsAddress"`
	BillingName          *string `json:"billingName"`
	BillingAddress       *string `json:"billingAddress"`
	BillingTaxNumber     *string `json:"billingTaxNumber"`
}

// Changes returns the column updates for existing. Derived columns follow their
// sources: address from the split parts, name from last/first name and
// contact_name from the contact's last/first name.
func (p ClientPatch) Changes(existing Client) (map[string]any, error) {
	changes := map[string]any{}

	if p.ClientType != nil {
		ct, ok := ParseClientType(*p.ClientType)
		if !ok {
			return nil, validation.Single("clientType", validation.ReasonInvalid)
		}
		changes["client_type"] = ct
		// a type switch must leave a record the new type would accept
		if ct != existing.ClientType {
			merged := p.apply(existing)
			merged.ClientType = ct
			if err := draftOf(merged).Validate(); err != nil {
				return nil, err
			}
		}
	}

	set := func(column string, v *string) {
		if v != nil {
			changes[column] = *v
		}
	}
	set("name", p.Name)
	set("last_name", p.LastName)
	set("first_name", p.FirstName)
	set("address", p.Address)
	set("postal_code", p.PostalCode)
	set("settlement", p.Settlement)
	set("street_address", p.StreetAddress)
	set("phone", p.Phone)
	set("email", p.Email)
	set("status", p.Status)
	set("tax_number", p.TaxNumber)
	set("contact_last_name", p.ContactLastName)
	set("contact_first_name", p.ContactFirstName)
	set("contact_name", p.ContactName)
	set("contact_phone", p.ContactPhone)
	set("contact_email", p.ContactEmail)
	set("billing_name", p.BillingName)
	set("billing_address", p.BillingAddress)
	set("billing_tax_number", p.BillingTaxNumber)
	if p.BillingSameAsAddress != nil {
		changes["billing_same_as_address"] = *p.BillingSameAsAddress
	}

	if p.PostalCode != nil || p.Settlement != nil || p.StreetAddress != nil {
		pc := pick(p.PostalCode, existing.PostalCode)
		st := pick(p.Settlement, existing.Settlement)
		sa := pick(p.StreetAddress, existing.StreetAddress)
		changes["address"] = ComposeAddress(pc, st, sa, "")
	}
	if p.LastName != nil || p.FirstName != nil {
		changes["name"] = PersonName(pick(p.LastName, existing.LastName), pick(p.FirstName, existing.FirstName))
	}
	if p.ContactLastName != nil || p.ContactFirstName != nil {
		changes["contact_name"] = PersonName(
			pick(p.ContactLastName, existing.ContactLastName),
			pick(p.ContactFirstName, existing.ContactFirstName),
		)
	}

	return changes, nil
}

// apply overlays the identity and contact fields of p onto c.
func (p ClientPatch) apply(c Client) Client {
	c.Name = pick(p.Name, c.Name)
	c.LastName = pick(p.LastName, c.LastName)
	c.FirstName = pick(p.FirstName, c.FirstName)
	c.Phone = pick(p.Phone, c.Phone)
	c.Email = pick(p.Email, c.Email)
	c.ContactLastName = pick(p.ContactLastName, c.ContactLastName)
	c.ContactFirstName = pick(p.ContactFirstName, c.ContactFirstName)
	c.ContactPhone = pick(p.ContactPhone, c.ContactPhone)
	c.ContactEmail = pick(p.ContactEmail, c.ContactEmail)
	return c
}

// draftOf rebuilds the draft an existing record would have been created from.
func draftOf(c Client) ClientDraft {
	if c.ClientType == ClientCompany {
		return CompanyDraft{
			Name:  c.Name,
			Phone: c.Phone,
			Email: c.Email,
			Contact: ContactPerson{
				LastName:  c.ContactLastName,
				FirstName: c.ContactFirstName,
				Phone:     c.ContactPhone,
				Email:     c.ContactEmail,
			},
		}
	}
	return IndividualDraft{
		LastName:  c.LastName,
		FirstName: c.FirstName,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}

func pick(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
