package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "42", r.PostForm.Get("chat_id"))
		assert.Equal(t, "*hello*", r.PostForm.Get("text"))
		assert.Equal(t, "Markdown", r.PostForm.Get("parse_mode"))
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7}}`)
	}))
	defer srv.Close()

	c := New("123:abc", "42", srv.URL, "Markdown", time.Second)
	require.NoError(t, c.Send(context.Background(), models.Digest{Text: "*hello*"}))
}

func TestSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	err := New("123:abc", "42", srv.URL, "Markdown", time.Second).Send(context.Background(), models.Digest{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
	assert.NotContains(t, err.Error(), "123:abc")
}

func TestSendNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":false,"description":"can't parse entities"}`)
	}))
	defer srv.Close()

	err := New("123:abc", "42", srv.URL, "Markdown", time.Second).Send(context.Background(), models.Digest{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse entities")
}

func TestSendTransportErrorHidesToken(t *testing.T) {
	err := New("123:abc", "42", "http://127.0.0.1:1", "Markdown", time.Second).Send(context.Background(), models.Digest{Text: "x"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "123:abc")
}

func TestSendWithoutCredentials(t *testing.T) {
	err := New("", "42", "http://127.0.0.1:1", "Markdown", time.Second).Send(context.Background(), models.Digest{})
	assert.True(t, errors.Is(err, drepo.ErrNotConfigured))

	err = New("123:abc", "", "http://127.0.0.1:1", "Markdown", time.Second).Send(context.Background(), models.Digest{})
	assert.True(t, errors.Is(err, drepo.ErrNotConfigured))
}
