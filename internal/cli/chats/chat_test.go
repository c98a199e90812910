package chats

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/config"
	"github.com/julianstephens/learnnova/internal/constants"
)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	gokeyring.MockInit()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	// No lockfile here, so discovery always falls through
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out := &bytes.Buffer{}
	return &cli.Context{Config: config.Default(), Out: out}, out
}

func TestAskWithoutCredentials(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&AskCmd{Message: []string{"how", "do", "I", "focus?"}}).Run(ctx))
	assert.Equal(t, constants.ChatFallbackUnavailable+"\n", out.String())
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	ctx, _ := newContext(t)
	assert.Error(t, (&AskCmd{Message: []string{" ", ""}, Local: true}).Run(ctx))
}

func TestAskCallsProviderDirectly(t *testing.T) {
	ctx, out := newContext(t)

	var body string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := new(bytes.Buffer)
		_, _ = b.ReadFrom(r.Body)
		body = b.String()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Try a 25 minute session."}}]}`))
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	ctx.Config.Chat.BaseURL = upstream.URL

	require.NoError(t, (&AskCmd{Message: []string{"how", "do", "I", "focus?"}, Local: true}).Run(ctx))
	assert.Equal(t, "Try a 25 minute session.\n", out.String())
	assert.Contains(t, body, "how do I focus?")
}

func TestAskFallsBackOnUpstreamError(t *testing.T) {
	ctx, out := newContext(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	ctx.Config.Chat.BaseURL = upstream.URL

	require.NoError(t, (&AskCmd{Message: []string{"hello"}}).Run(ctx))
	assert.Equal(t, constants.ChatFallbackFailed+"\n", out.String())
}

func TestNewServiceUnknownProvider(t *testing.T) {
	ctx, _ := newContext(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	ctx.Config.Chat.Provider = "other"

	_, err := newService(t.Context(), ctx)
	assert.Error(t, err)
}
