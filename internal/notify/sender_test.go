package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmailSender(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewHTTPEmailSender(srv.URL, "key-123", "noreply@ecsrs.gov.ng")

	err := sender.SendEmail(context.Background(), "user@example.com", "ECSRS Report Update - ECR-2026-0001", "Report resolved.")
	require.NoError(t, err)

	assert.Equal(t, "ECSRS Report Update - ECR-2026-0001", got["subject"])
	from := got["from"].(map[string]any)
	assert.Equal(t, "noreply@ecsrs.gov.ng", from["email"])
}

func TestHTTPEmailSenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	sender := NewHTTPEmailSender(srv.URL, "key-123", "noreply@ecsrs.gov.ng")

	err := sender.SendEmail(context.Background(), "user@example.com", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestHTTPSMSSender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+2348030000001", r.PostFormValue("To"))
		assert.Equal(t, "+2348090000000", r.PostFormValue("From"))
		assert.Equal(t, "Report resolved.", r.PostFormValue("Body"))

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sender := NewHTTPSMSSender("AC123", "token", "+2348090000000")
	sender.baseURL = srv.URL

	err := sender.SendSMS(context.Background(), "+2348030000001", "Report resolved.")
	require.NoError(t, err)
}
