package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventinvite/internal/domain"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.name = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func TestEmailService_SendEventInvitation(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer)

	err := svc.SendEventInvitation(context.Background(), &domain.EventInvitationEmailData{
		Email:      "ann@example.com",
		EventTitle: "Summer BBQ",
	})
	require.NoError(t, err)
	assert.Equal(t, "invitation", renderer.name)
	assert.Equal(t, "ann@example.com", mailer.to)
	assert.Equal(t, "subject", mailer.subject)
	assert.Equal(t, "<p>html</p>", mailer.html)
	assert.Equal(t, "text", mailer.text)
}

func TestEmailService_SendEventInvitation_NilData(t *testing.T) {
	svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})
	assert.Error(t, svc.SendEventInvitation(context.Background(), nil))
}

func TestEmailService_SendEventInvitation_RenderError(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{err: errors.New("template missing")}
	svc := NewEmailService(mailer, renderer)

	err := svc.SendEventInvitation(context.Background(), &domain.EventInvitationEmailData{Email: "a@x.com"})
	require.Error(t, err)
	assert.Empty(t, mailer.to, "nothing is sent when rendering fails")
}

func TestEmailService_SendEventInvitation_SendError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("connection refused")}
	svc := NewEmailService(mailer, &fakeRenderer{})

	err := svc.SendEventInvitation(context.Background(), &domain.EventInvitationEmailData{Email: "a@x.com"})
	assert.Error(t, err)
}
