package mail

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got  *sgmail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.got = email
	return f.resp, f.err
}

func TestSendGridMailer_Send(t *testing.T) {
	fake := &fakeSender{resp: &rest.Response{StatusCode: http.StatusAccepted}}
	m := &SendGridMailer{client: fake}

	err := m.Send(context.Background(), domain.Email{
		To:      []string{"author@x.com", "admin@x.com"},
		From:    "noreply@x.com",
		ReplyTo: "visitor@x.com",
		Subject: "Hi",
		Text:    "plain",
		HTML:    "<p>html</p>",
	})
	require.NoError(t, err)
	require.NotNil(t, fake.got)
	assert.Equal(t, "noreply@x.com", fake.got.From.Address)
	assert.Equal(t, "visitor@x.com", fake.got.ReplyTo.Address)
	require.Len(t, fake.got.Personalizations, 1)
	assert.Len(t, fake.got.Personalizations[0].To, 2)
	require.Len(t, fake.got.Content, 2)
	assert.Equal(t, "text/plain", fake.got.Content[0].Type)
	assert.Equal(t, "text/html", fake.got.Content[1].Type)
}

func TestSendGridMailer_Failures(t *testing.T) {
	m := &SendGridMailer{client: &fakeSender{err: errors.New("dial tcp: timeout")}}
	assert.Error(t, m.Send(context.Background(), domain.Email{To: []string{"a@x.com"}}))

	m = &SendGridMailer{client: &fakeSender{resp: &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}}}
	err := m.Send(context.Background(), domain.Email{To: []string{"a@x.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestLogMailer_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogMailer(nil).Send(context.Background(), domain.Email{To: []string{"a@x.com"}, Subject: "s"}))
}
