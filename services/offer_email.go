package services

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/mail"
	"strings"

	"github.com/pocketbase/pocketbase/tools/mailer"
)

// DefaultOfferSubject is used when the request leaves the subject empty.
func DefaultOfferSubject(projectName, companyName string) string {
	return fmt.Sprintf("Commercial Offer - %s from %s", projectName, companyName)
}

// DefaultOfferMessage is the HTML body used when the request leaves the
// message empty.
func DefaultOfferMessage(customerName, projectName, companyName string) string {
	if customerName == "" {
		customerName = "Customer"
	}
	return fmt.Sprintf(
		"<p>Dear %s,</p>"+
			"<p>Please find attached our commercial offer for the project: <strong>%s</strong>.</p>"+
			"<p>If you have any questions, please don't hesitate to contact us.</p>"+
			"<p>Best regards,<br>%s</p>",
		html.EscapeString(customerName),
		html.EscapeString(projectName),
		html.EscapeString(companyName),
	)
}

// OfferEmail is a composed offer message ready to hand to a mailer.
type OfferEmail struct {
	To                string
	Cc                string
	Subject           string
	HTML              string
	AttachmentName    string
	Attachment        []byte
	SenderDisplayName string
}

// ComposeOfferEmail fills subject and body defaults and attaches the PDF.
// A non-blank subject or message is sent verbatim. ccEmail may be empty.
func ComposeOfferEmail(data OfferData, req OfferEmailRequest, ccEmail string, pdf []byte) OfferEmail {
	company := data.CompanyName()

	subject := req.Subject
	if strings.TrimSpace(subject) == "" {
		subject = DefaultOfferSubject(data.Project.Name, company)
	}
	body := req.Message
	if strings.TrimSpace(body) == "" {
		body = DefaultOfferMessage(data.Project.CustomerName, data.Project.Name, company)
	}

	return OfferEmail{
		To:                req.ToEmail,
		Cc:                ccEmail,
		Subject:           subject,
		HTML:              body,
		AttachmentName:    OfferFilename(data.Project.Name, FormatPDF),
		Attachment:        pdf,
		SenderDisplayName: company,
	}
}

// Message converts the email into a mailer message sent from sender. The
// sender name falls back to the company name.
func (o OfferEmail) Message(sender mail.Address) *mailer.Message {
	if sender.Name == "" {
		sender.Name = o.SenderDisplayName
	}

	msg := &mailer.Message{
		From:    sender,
		To:      []mail.Address{{Address: o.To}},
		Subject: o.Subject,
		HTML:    o.HTML,
		Attachments: map[string]io.Reader{
			o.AttachmentName: bytes.NewReader(o.Attachment),
		},
	}
	if o.Cc != "" && o.Cc != o.To {
		msg.Cc = []mail.Address{{Address: o.Cc}}
	}
	return msg
}
