package email

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		msg     Message
		wantErr string
	}{
		{
			name: "text only",
			from: "billing@hospital.test",
			msg:  Message{To: []string{"p@example.com"}, Subject: "Invoice", TextBody: "hello"},
		},
		{
			name:    "missing from",
			from:    "  ",
			msg:     Message{To: []string{"p@example.com"}, Subject: "Invoice", TextBody: "hello"},
			wantErr: "from is required",
		},
		{
			name:    "missing subject",
			from:    "billing@hospital.test",
			msg:     Message{To: []string{"p@example.com"}, TextBody: "hello"},
			wantErr: "subject is required",
		},
		{
			name:    "missing body",
			from:    "billing@hospital.test",
			msg:     Message{To: []string{"p@example.com"}, Subject: "Invoice"},
			wantErr: "either TextBody or HTMLBody is required",
		},
		{
			name:    "unnamed attachment",
			from:    "billing@hospital.test",
			msg:     Message{To: []string{"p@example.com"}, Subject: "Invoice", TextBody: "x", Attachments: []Attachment{{Data: []byte("x")}}},
			wantErr: "attachment name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMessage(tt.from, tt.msg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildInvoiceEmail(t *testing.T) {
	m := BuildInvoiceEmail(InvoiceEmailData{
		To:           "p@example.com",
		BillID:       "B001",
		PatientName:  "Jane <Doe>",
		HospitalName: "City Hospital",
		FileName:     "bill_1001.txt",
		Invoice:      "TOTAL AMOUNT DUE : ₹150.00",
	})

	if m.Subject != "Invoice B001 from City Hospital" {
		t.Errorf("subject = %q", m.Subject)
	}
	if !strings.Contains(m.TextBody, "TOTAL AMOUNT DUE") {
		t.Errorf("text body misses the invoice: %q", m.TextBody)
	}
	if !strings.Contains(m.HTMLBody, "Jane &lt;Doe&gt;") {
		t.Errorf("html body is not escaped: %q", m.HTMLBody)
	}
	if len(m.Attachments) != 1 || m.Attachments[0].Name != "bill_1001.txt" {
		t.Errorf("attachments = %+v", m.Attachments)
	}
	if _, err := buildMessage("billing@hospital.test", m); err != nil {
		t.Errorf("built invoice email is not sendable: %v", err)
	}
}

func TestSendDisabled(t *testing.T) {
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	err = c.Send(context.Background(), Message{Subject: "x", TextBody: "x"})
	if !errors.As(err, &ErrDisabled{}) {
		t.Fatalf("Send on disabled client = %v, want ErrDisabled", err)
	}
}

func TestNewRequiresHostWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for enabled client without smtp host")
	}
}
