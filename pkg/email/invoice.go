package email

import (
	"fmt"
	"html"
)

// InvoiceEmailData contains what the invoice message needs.
type InvoiceEmailData struct {
	To           string
	BillID       string
	PatientName  string
	HospitalName string
	FileName     string
	Invoice      string
}

// BuildInvoiceEmail wraps a rendered text invoice into a message. The invoice
// is inlined in the body and attached as a file.
func BuildInvoiceEmail(data InvoiceEmailData) Message {
	hospital := data.HospitalName
	if hospital == "" {
		hospital = "our Hospital"
	}

	name := data.PatientName
	if name == "" {
		name = "Patient"
	}

	subject := fmt.Sprintf("Invoice %s from %s", data.BillID, hospital)

	textBody := fmt.Sprintf(`Dear %s,

Please find your invoice %s below.

%s
`, name, data.BillID, data.Invoice)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #333;">
    <p>Dear %s,</p>
    <p>Please find your invoice <strong>%s</strong> below.</p>
    <pre style="font-family: Menlo, Consolas, monospace; font-size: 13px;">%s</pre>
</body>
</html>`, html.EscapeString(name), html.EscapeString(data.BillID), html.EscapeString(data.Invoice))

	msg := Message{
		To:       []string{data.To},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
	if data.FileName != "" {
		msg.Attachments = []Attachment{{Name: data.FileName, Data: []byte(data.Invoice)}}
	}
	return msg
}
