package handlers

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"contractorpm/services"
)

// HandleSendOffer mails the project offer PDF to a customer, with the
// authenticated user in CC. newMailer is called once per request.
func HandleSendOffer(app core.App, opts services.OfferOptions, newMailer func() mailer.Mailer) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "send_offer", err)
		}

		var req services.OfferEmailRequest
		if err := bindJSON(e, &req); err != nil {
			return respondError(e, "send_offer", err)
		}
		req.Normalize()
		if err := req.Validate(); err != nil {
			return respondError(e, "send_offer", err)
		}

		settings := app.Settings()
		if !settings.SMTP.Enabled || settings.Meta.SenderAddress == "" {
			return respondError(e, "send_offer", services.ErrEmailNotConfigured)
		}

		data, err := LoadOffer(app, e.Request.PathValue("id"), user.Id, opts)
		if err != nil {
			return respondError(e, "send_offer", err)
		}

		pdf, err := services.GenerateOfferPDF(data)
		if err != nil {
			return respondError(e, "send_offer", fmt.Errorf("render pdf offer: %w", err))
		}
		reportsGenerated.WithLabelValues(services.FormatPDF).Inc()

		offer := services.ComposeOfferEmail(data, req, user.Email(), pdf)
		msg := offer.Message(mail.Address{Name: settings.Meta.SenderName, Address: settings.Meta.SenderAddress})

		if err := newMailer().Send(msg); err != nil {
			offerEmails.WithLabelValues("failed").Inc()
			app.Logger().Warn("send_offer: delivery failed",
				"project", data.Project.ID, "to", offer.To, "error", err)
			return respondError(e, "send_offer", &services.EmailError{Recipient: offer.To, Err: err})
		}
		offerEmails.WithLabelValues("sent").Inc()

		app.Logger().Info("send_offer: offer sent", "project", data.Project.ID, "to", offer.To)
		return e.JSON(http.StatusOK, map[string]string{
			"message": "Email sent successfully to " + offer.To,
		})
	}
}
