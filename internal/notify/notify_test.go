package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLeadEscapesInput(t *testing.T) {
	out := FormatLead(Lead{Name: "Kiss <Bela>", Phone: "+36 1", Email: "b@example.com", Company: true})

	assert.Contains(t, out, "(company)")
	assert.Contains(t, out, "Kiss &lt;Bela&gt;")
	assert.Contains(t, out, "(no message)")
	assert.NotContains(t, out, "<Bela>")
}

func TestNewTelegramRejectsBadChatID(t *testing.T) {
	_, err := NewTelegram("token", "not-a-number", "")
	assert.Error(t, err)
}

func TestTelegramLeadReceived(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"crm","username":"crm_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			assert.NoError(t, r.ParseForm())
			mu.Lock()
			sent = append(sent, r.PostForm.Get("chat_id")+"|"+r.PostForm.Get("text"))
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tg, err := NewTelegram("test-token", "42", srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	require.NoError(t, tg.LeadReceived(Lead{Name: "Nagy Eva", Phone: "+36 30", Email: "eva@example.com", Message: "kitchen"}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0], "42|"))
	assert.Contains(t, sent[0], "Nagy Eva")
	assert.Contains(t, sent[0], "kitchen")
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.LeadReceived(Lead{}))
}
