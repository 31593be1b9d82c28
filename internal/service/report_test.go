package service

import (
	"context"
	"strings"
	"testing"

	"investiga-web/internal/domain"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportService_SendIssueReport(t *testing.T) {
	report := domain.IssueReport{
		Reference:   "ref-1",
		Path:        "/projects/4/genomica",
		Description: "<b>the page broke</b>",
		Email:       "ana@uni.es",
	}

	t.Run("Success", func(t *testing.T) {
		sender := new(MockMailSender)
		sender.On("Send", mock.MatchedBy(func(m *mail.SGMailV3) bool {
			if m.Subject != "[Investiga] Issue report ref-1" || m.ReplyTo == nil || m.ReplyTo.Address != "ana@uni.es" {
				return false
			}
			for _, c := range m.Content {
				if c.Type == "text/html" && strings.Contains(c.Value, "<b>") {
					return false
				}
			}
			return true
		})).Return(&rest.Response{StatusCode: 202}, nil)

		svc := NewReportServiceWithSender(sender, "noreply@investiga.es", "Investiga", "team@investiga.es")
		assert.NoError(t, svc.SendIssueReport(context.Background(), report))
		sender.AssertExpectations(t)
	})

	t.Run("ProviderRejects", func(t *testing.T) {
		sender := new(MockMailSender)
		sender.On("Send", mock.Anything).Return(&rest.Response{StatusCode: 401, Body: "bad key"}, nil)

		svc := NewReportServiceWithSender(sender, "noreply@investiga.es", "Investiga", "team@investiga.es")
		err := svc.SendIssueReport(context.Background(), report)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("Disabled", func(t *testing.T) {
		assert.NoError(t, NewDisabledReportService().SendIssueReport(context.Background(), report))
	})
}
