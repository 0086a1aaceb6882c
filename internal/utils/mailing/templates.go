package mailing

import (
	"bytes"
	"html/template"
)

var donationStatusTemplate = template.Must(template.New("donation_status").Parse(`<html>
<body>
<p>Hi {{.Username}},</p>
<p>Your donation <strong>{{.DonationName}}</strong> to {{.Organization}} is now <strong>{{.Status}}</strong>.</p>
<p><a href="{{.AppURL}}/donations">View your donations</a></p>
</body>
</html>`))

type DonationStatusMail struct {
	Username     string
	DonationName string
	Organization string
	Status       string
	AppURL       string
}

func RenderDonationStatus(data DonationStatusMail) (string, error) {
	var buf bytes.Buffer
	if err := donationStatusTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var expiryReminderTemplate = template.Must(template.New("expiry_reminder").Parse(`<html>
<body>
<p>Hi {{.Username}},</p>
<p>These items in your food log expire tomorrow ({{.Date}}):</p>
<ul>
{{range .Items}}<li>{{.}}</li>
{{end}}</ul>
<p>Consider using them today or <a href="{{.AppURL}}/donations">donating them</a> to a nearby organization.</p>
</body>
</html>`))

type ExpiryReminderMail struct {
	Username string
	Date     string
	Items    []string
	AppURL   string
}

func RenderExpiryReminder(data ExpiryReminderMail) (string, error) {
	var buf bytes.Buffer
	if err := expiryReminderTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
