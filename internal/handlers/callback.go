package handlers

import (
	"context"
	"net/http"
	"strings"

	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/models"
	"renovation-crm/internal/notify"
	"renovation-crm/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// callbackRequest is the public consultation form, posted as JSON by the API
// or as a form by the landing page.
type callbackRequest struct {
	ClientType string `json:"clientType" form:"clientType"`

	LastName  string `json:"lastName" form:"lastName"`
	FirstName string `json:"firstName" form:"firstName"`
	Phone     string `json:"phone" form:"phone"`
	Email     string `json:"email" form:"email"`

	CompanyName      string `json:"companyName" form:"companyName"`
	ContactLastName  string `json:"contactLastName" form:"contactLastName"`
	ContactFirstName string `json:"contactFirstName" form:"contactFirstName"`
	ContactPhone     string `json:"contactPhone" form:"contactPhone"`
	ContactEmail     string `json:"contactEmail" form:"contactEmail"`

	Message string `json:"message" form:"message"`

	// nil counts as consent; only an explicit false opts out
	SubscribeConsent *bool `json:"subscribeConsent" form:"subscribeConsent"`
}

// individualLead and companyLead carry the fields each client type must fill
// on the intake form.
type individualLead struct {
	LastName  string `json:"lastName" binding:"notblank"`
	FirstName string `json:"firstName" binding:"notblank"`
	Phone     string `json:"phone" binding:"notblank"`
	Email     string `json:"email" binding:"notblank,email"`
}

type companyLead struct {
	CompanyName      string `json:"companyName" binding:"notblank"`
	ContactLastName  string `json:"contactLastName" binding:"notblank"`
	ContactFirstName string `json:"contactFirstName" binding:"notblank"`
	ContactPhone     string `json:"contactPhone" binding:"notblank"`
	ContactEmail     string `json:"contactEmail" binding:"notblank,email"`
}

func (r callbackRequest) draft() (models.ClientDraft, error) {
	ct, ok := models.ParseClientType(r.ClientType)
	if !ok {
		return nil, validation.Single("clientType", validation.ReasonInvalid)
	}
	consent := r.SubscribeConsent == nil || *r.SubscribeConsent

	if ct == models.ClientCompany {
		lead := companyLead{
			CompanyName:      strings.TrimSpace(r.CompanyName),
			ContactLastName:  strings.TrimSpace(r.ContactLastName),
			ContactFirstName: strings.TrimSpace(r.ContactFirstName),
			ContactPhone:     strings.TrimSpace(r.ContactPhone),
			ContactEmail:     strings.TrimSpace(r.ContactEmail),
		}
		if err := validation.Struct(lead); err != nil {
			return nil, err
		}

		// the company is reached through its contact person
		return models.CompanyDraft{
			Name:  lead.CompanyName,
			Phone: lead.ContactPhone,
			Email: lead.ContactEmail,
			Contact: models.ContactPerson{
				LastName:  lead.ContactLastName,
				FirstName: lead.ContactFirstName,
				Phone:     lead.ContactPhone,
				Email:     lead.ContactEmail,
			},
			Billing:          models.DefaultBilling(),
			SubscribeConsent: consent,
		}, nil
	}

	lead := individualLead{
		LastName:  strings.TrimSpace(r.LastName),
		FirstName: strings.TrimSpace(r.FirstName),
		Phone:     strings.TrimSpace(r.Phone),
		Email:     strings.TrimSpace(r.Email),
	}
	if err := validation.Struct(lead); err != nil {
		return nil, err
	}

	return models.IndividualDraft{
		LastName:         lead.LastName,
		FirstName:        lead.FirstName,
		Phone:            lead.Phone,
		Email:            lead.Email,
		Billing:          models.DefaultBilling(),
		SubscribeConsent: consent,
	}, nil
}

// CallbackProcessText is the body of the process opened for every lead.
func CallbackProcessText(message string) string {
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = "(no message)"
	}
	return "The client requested a callback with the following message:\n\n" +
		msg +
		"\n\nCall them back as soon as possible."
}

// submitCallback stores the lead and its first process. The two writes are
// independent: a failed process insert leaves the client in place.
func submitCallback(ctx context.Context, req callbackRequest, notifier notify.Notifier) (*models.Client, error) {
	log := logger.WithContext(ctx)

	draft, err := req.draft()
	if err != nil {
		return nil, err
	}

	client, err := database.CreateClient(draft, models.SourceCallback)
	if err != nil {
		return nil, err
	}

	if _, err := database.CreateProcess(client.ID, CallbackProcessText(req.Message), ""); err != nil {
		log.Error("callback process not created, client left without process",
			zap.String("client_id", client.ID),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("callback request stored",
		zap.String("client_id", client.ID),
		zap.String("type", string(client.ClientType)),
		zap.String("email", logger.MaskEmail(client.Email)),
		zap.String("phone", logger.MaskPhone(client.Phone)),
	)

	lead := notify.Lead{
		Name:    client.Name,
		Phone:   client.Phone,
		Email:   client.Email,
		Message: req.Message,
		Company: client.ClientType == models.ClientCompany,
	}
	if err := notifier.LeadReceived(lead); err != nil {
		log.Warn("lead notification failed", zap.String("client_id", client.ID), zap.Error(err))
	}

	return client, nil
}

// CreateCallbackRequest is the public POST /api/callback-requests.
func CreateCallbackRequest(notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		client, err := submitCallback(c.Request.Context(), req, notifier)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, client)
	}
}
