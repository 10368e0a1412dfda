package handlers

import (
	"errors"
	"net/http"
	"strings"

	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/models"
	"renovation-crm/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// clientRequest is the create payload for both client types; clientType picks
// which fields are read.
type clientRequest struct {
	ClientType string `json:"clientType"`

	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`

	Address       string `json:"address"`
	PostalCode    string `json:"postalCode"`
	Settlement    string `json:"settlement"`
	StreetAddress string `json:"streetAddress"`

	Phone     string `json:"phone"`
	Email     string `json:"email"`
	TaxNumber string `json:"taxNumber"`

	ContactLastName  string `json:"contactLastName"`
	ContactFirstName string `json:"contactFirstName"`
	ContactPhone     string `json:"contactPhone"`
	ContactEmail     string `json:"contactEmail"`

	BillingSameAsAddress *bool  `json:"billingSameAsAddress"`
	BillingName          string `json:"billingName"`
	BillingAddress       string `json:"billingAddress"`
	BillingTaxNumber     string `json:"billingTaxNumber"`

	SubscribeConsent *bool `json:"subscribeConsent"`
}

func (r clientRequest) draft() (models.ClientDraft, error) {
	ct, ok := models.ParseClientType(r.ClientType)
	if !ok {
		return nil, validation.Single("clientType", validation.ReasonInvalid)
	}

	address := models.AddressParts{
		PostalCode: r.PostalCode,
		Settlement: r.Settlement,
		Street:     r.StreetAddress,
		FreeText:   r.Address,
	}
	billing := models.DefaultBilling()
	if r.BillingSameAsAddress != nil {
		billing.SameAsAddress = *r.BillingSameAsAddress
	}
	billing.Name = r.BillingName
	billing.Address = r.BillingAddress
	billing.TaxNumber = r.BillingTaxNumber
	consent := r.SubscribeConsent != nil && *r.SubscribeConsent

	if ct == models.ClientCompany {
		return models.CompanyDraft{
			Name:      r.Name,
			Phone:     r.Phone,
			Email:     r.Email,
			TaxNumber: r.TaxNumber,
			Contact: models.ContactPerson{
				LastName:  r.ContactLastName,
				FirstName: r.ContactFirstName,
				Phone:     r.ContactPhone,
				Email:     r.ContactEmail,
			},
			Address:          address,
			Billing:          billing,
			SubscribeConsent: consent,
		}, nil
	}

	return models.IndividualDraft{
		LastName:         r.LastName,
		FirstName:        r.FirstName,
		Phone:            r.Phone,
		Email:            r.Email,
		Address:          address,
		Billing:          billing,
		SubscribeConsent: consent,
	}, nil
}

//
// API
//

func ListClients(c *gin.Context) {
	clients, err := database.ListClients()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	client, err := database.GetClient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	draft, err := req.draft()
	if err != nil {
		respondError(c, err)
		return
	}

	client, err := database.CreateClient(draft, models.SourceManual)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).Info("client created",
		zap.String("client_id", client.ID),
		zap.String("type", string(client.ClientType)),
	)
	c.JSON(http.StatusCreated, client)
}

func UpdateClient(c *gin.Context) {
	var patch models.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindFailed(c, err)
		return
	}

	client, err := database.UpdateClient(c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func DeleteClient(c *gin.Context) {
	existed, err := database.DeleteClient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !existed {
		respondError(c, database.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// console
//

func Dashboard(c *gin.Context) {
	clients, err := database.ListClients()
	if err != nil {
		consoleError(c, err)
		return
	}
	open, err := database.ListProcessViews(database.ProcessFilter{Status: models.ProcessOpen})
	if err != nil {
		consoleError(c, err)
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"clients":   clients,
		"processes": open,
	})
}

// patchFromForm keeps only the fields whose submitted value differs from the
// stored one. The edit form posts every input it renders, so an untouched
// address part must not recompose a legacy free-text address.
func patchFromForm(c *gin.Context, existing models.Client) models.ClientPatch {
	field := func(key, current string) *string {
		v, ok := c.GetPostForm(key)
		if !ok {
			return nil
		}
		v = strings.TrimSpace(v)
		if v == current {
			return nil
		}
		return &v
	}

	p := models.ClientPatch{
		Name:             field("name", existing.Name),
		LastName:         field("lastName", existing.LastName),
		FirstName:        field("firstName", existing.FirstName),
		PostalCode:       field("postalCode", existing.PostalCode),
		Settlement:       field("settlement", existing.Settlement),
		StreetAddress:    field("streetAddress", existing.StreetAddress),
		Phone:            field("phone", existing.Phone),
		Email:            field("email", existing.Email),
		Status:           field("status", existing.Status),
		TaxNumber:        field("taxNumber", existing.TaxNumber),
		ContactLastName:  field("contactLastName", existing.ContactLastName),
		ContactFirstName: field("contactFirstName", existing.ContactFirstName),
		ContactPhone:     field("contactPhone", existing.ContactPhone),
		ContactEmail:     field("contactEmail", existing.ContactEmail),
		BillingName:      field("billingName", existing.BillingName),
		BillingAddress:   field("billingAddress", existing.BillingAddress),
		BillingTaxNumber: field("billingTaxNumber", existing.BillingTaxNumber),
	}
	if v, ok := c.GetPostForm("billingSameAsAddress"); ok {
		if same := v == "true"; same != existing.BillingSameAsAddress {
			p.BillingSameAsAddress = &same
		}
	}
	return p
}

func ConsoleUpdateClient(c *gin.Context) {
	id := c.Param("id")
	existing, err := database.GetClient(id)
	if err != nil {
		consoleError(c, err)
		return
	}

	if _, err := database.UpdateClient(id, patchFromForm(c, *existing)); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			renderClientDetail(c, id, http.StatusBadRequest, "Invalid fields: "+strings.Join(verr.Fields(), ", "))
			return
		}
		consoleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/clients/"+id)
}

func ConsoleDeleteClient(c *gin.Context) {
	existed, err := database.DeleteClient(c.Param("id"))
	if err != nil {
		consoleError(c, err)
		return
	}
	if !existed {
		c.String(http.StatusNotFound, "client not found")
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// consoleError answers console requests with a plain text error page.
func consoleError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusNotFound, "not found")
		return
	}
	_ = c.Error(err)
	logger.WithContext(c.Request.Context()).Error("console request failed", zap.Error(err))
	c.String(http.StatusInternalServerError, "something went wrong")
}
