package handlers

import (
	"errors"
	"net/http"

	"renovation-crm/internal/notify"
	"renovation-crm/internal/validation"

	"github.com/gin-gonic/gin"
)

// IndexPage is the public landing page with the consultation form.
func IndexPage(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{
		"form":    callbackRequest{},
		"missing": map[string]bool{},
	})
}

// SubmitCallbackForm handles the landing page form. Invalid input re-renders
// the form with the offending fields marked.
func SubmitCallbackForm(notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form callbackRequest
		if err := c.ShouldBind(&form); err != nil {
			render(c, http.StatusBadRequest, "index.html", gin.H{
				"form":    form,
				"missing": map[string]bool{},
				"error":   "Invalid form data",
			})
			return
		}

		if _, err := submitCallback(c.Request.Context(), form, notifier); err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				missing := map[string]bool{}
				for _, f := range verr.Fields() {
					missing[f] = true
				}
				render(c, http.StatusBadRequest, "index.html", gin.H{
					"form":    form,
					"missing": missing,
					"error":   "Please fill in the highlighted fields",
				})
				return
			}
			_ = c.Error(err)
			render(c, http.StatusInternalServerError, "index.html", gin.H{
				"form":    form,
				"missing": map[string]bool{},
				"error":   "We could not save your request, please try again later",
			})
			return
		}

		render(c, http.StatusOK, "thanks.html", nil)
	}
}
