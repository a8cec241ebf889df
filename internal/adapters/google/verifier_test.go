package google

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

type fakeExchanger struct {
	tok *oauth2.Token
	err error
}

func (f fakeExchanger) Exchange(context.Context, string, ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	return f.tok, f.err
}

func TestVerifyIDToken(t *testing.T) {
	v := &Verifier{clientID: "client", validate: func(_ context.Context, tok, aud string) (*idtoken.Payload, error) {
		assert.Equal(t, "client", aud)
		if tok != "good" {
			return nil, errors.New("idtoken: token expired")
		}
		return &idtoken.Payload{Subject: "sub-1", Claims: map[string]interface{}{
			"email":          "a@x.com",
			"email_verified": true,
			"name":           "Alice",
			"jti":            "jti-1",
		}}, nil
	}}

	id, err := v.VerifyIDToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", id.Subject)
	assert.Equal(t, "a@x.com", id.Email)
	assert.True(t, id.EmailVerified)
	assert.Equal(t, "Alice", id.Name)
	assert.Equal(t, "jti-1", id.TokenID)

	_, err = v.VerifyIDToken(context.Background(), "bad")
	assert.Error(t, err)
}

func TestVerifyIDToken_NotConfigured(t *testing.T) {
	_, err := (&Verifier{}).VerifyIDToken(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIdentityFromClaims_StringVerified(t *testing.T) {
	id := identityFromClaims(&idtoken.Payload{Claims: map[string]interface{}{"email_verified": "false"}})
	assert.False(t, id.EmailVerified)
}

func TestExchangeCode(t *testing.T) {
	tok := (&oauth2.Token{AccessToken: "at"}).WithExtra(map[string]interface{}{"id_token": "idt"})
	v := &Verifier{clientID: "client", oauth: fakeExchanger{tok: tok}}
	got, err := v.ExchangeCode(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "idt", got)

	v.oauth = fakeExchanger{tok: &oauth2.Token{AccessToken: "at"}}
	_, err = v.ExchangeCode(context.Background(), "code")
	assert.ErrorIs(t, err, ErrNoIDToken)

	v.oauth = fakeExchanger{err: &oauth2.RetrieveError{ErrorCode: "invalid_grant"}}
	_, err = v.ExchangeCode(context.Background(), "code")
	assert.ErrorIs(t, err, gateways.ErrInvalidCode)

	v.oauth = fakeExchanger{err: errors.New("dial tcp: i/o timeout")}
	_, err = v.ExchangeCode(context.Background(), "code")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, gateways.ErrInvalidCode)
}
