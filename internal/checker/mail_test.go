package checker

import (
	"context"
	"testing"
)

func TestMailChecker_Name(t *testing.T) {
	chk := &MailChecker{}
	if got := chk.Name(); got != "check mail" {
		t.Errorf("MailChecker.Name() = %v, want %v", got, "check mail")
	}
}

func TestMailChecker_Banners(t *testing.T) {
	tests := []struct {
		name   string
		banner string
		want   Status
	}{
		{"esmtp without starttls", "220 mail.example.com ESMTP Postfix", StatusInsecure},
		{"esmtp with starttls", "220 mail.example.com ESMTP Postfix STARTTLS", StatusSecure},
		{"plain smtp greeting", "220 mail.example.com SMTP ready", StatusSecure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port := startBannerServer(t, tt.banner+"\r\n")

			chk := &MailChecker{Port: port, Probe: shortProbe()}
			result := chk.Check(context.Background(), host)

			if result.Status != tt.want {
				t.Errorf("Check() status = %v, want %v (banner %q)", result.Status, tt.want, tt.banner)
			}
		})
	}
}

func TestMailChecker_RefusedIsSecure(t *testing.T) {
	host, port := closedPort(t)

	chk := &MailChecker{Port: port, Probe: shortProbe()}
	result := chk.Check(context.Background(), host)

	if result.Status != StatusSecure {
		t.Errorf("Check() status = %v, want secure", result.Status)
	}
}
