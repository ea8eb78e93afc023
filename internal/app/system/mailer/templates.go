// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dalemusser/tetsupaint/internal/domain/models"
)

// InquiryEmailData holds data for the new-inquiry notification.
type InquiryEmailData struct {
	SiteName  string
	Reference string
	Name      string
	Email     string
	Subject   string
	Message   string
	Received  time.Time
}

// BuildInquiryNotification creates the email sent to the sales inbox when a
// visitor submits the contact form. Reply-To is the visitor so staff can
// answer directly.
func BuildInquiryNotification(data InquiryEmailData) Email {
	return Email{
		To:       "", // Set by caller
		ReplyTo:  data.Email,
		Subject:  fmt.Sprintf("[%s] %s from %s (%s)", data.SiteName, data.Subject, data.Name, data.Reference),
		TextBody: buildInquiryText(data),
		HTMLBody: buildInquiryHTML(data),
	}
}

// InquiryNotification builds the notification for a stored inquiry,
// addressed to inbox.
func InquiryNotification(in models.Inquiry, siteName, inbox string) Email {
	e := BuildInquiryNotification(InquiryEmailData{
		SiteName:  siteName,
		Reference: in.ShortReference(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Received:  in.CreatedAt,
	})
	e.To = inbox
	return e
}

func buildInquiryText(data InquiryEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("New message via the %s website contact form.\n\n", data.SiteName))
	buf.WriteString(fmt.Sprintf("Reference: %s\n", data.Reference))
	buf.WriteString(fmt.Sprintf("Received:  %s\n", data.Received.Format("02 Jan 2006 15:04 MST")))
	buf.WriteString(fmt.Sprintf("Name:      %s\n", data.Name))
	buf.WriteString(fmt.Sprintf("Email:     %s\n", data.Email))
	buf.WriteString(fmt.Sprintf("Subject:   %s\n\n", data.Subject))
	buf.WriteString(data.Message + "\n")
	return buf.String()
}

var inquiryHTML = template.Must(template.New("inquiry").Parse(inquiryHTMLTemplate))

func buildInquiryHTML(data InquiryEmailData) string {
	var buf bytes.Buffer
	_ = inquiryHTML.Execute(&buf, data)
	return buf.String()
}

const inquiryHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>New inquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f8f9fa;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f8f9fa;">
    <tr>
      <td align="center" style="padding: 32px 16px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-top: 4px solid #e63946;">
          <tr>
            <td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 20px; color: #0a2463;">{{.SiteName}}: {{.Subject}}</h1>
              <p style="margin: 4px 0 0; font-size: 12px; color: #6b7280;">Reference {{.Reference}} &middot; {{.Received.Format "02 Jan 2006 15:04 MST"}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; font-size: 14px; color: #1d3557;">
              <p style="margin: 0 0 8px;"><strong>{{.Name}}</strong> &lt;<a href="mailto:{{.Email}}" style="color: #0a2463;">{{.Email}}</a>&gt;</p>
              <p style="margin: 16px 0 0; white-space: pre-wrap; line-height: 1.5;">{{.Message}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`
