package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Assistant is a scripted stand-in for the AI chat endpoint. Replies
// are consumed in order; with no script it answers with a fixed line.
type Assistant struct {
	mu       sync.Mutex
	server   *httptest.Server
	replies  []string
	status   int
	requests []map[string]any
}

// NewAssistant starts the scripted assistant server.
func NewAssistant() *Assistant {
	a := &Assistant{status: http.StatusOK}
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	return a
}

func (a *Assistant) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var request map[string]any
	_ = json.NewDecoder(r.Body).Decode(&request)
	a.requests = append(a.requests, request)

	if a.status != http.StatusOK {
		w.WriteHeader(a.status)
		return
	}

	reply := "scripted reply"
	if len(a.replies) > 0 {
		reply = a.replies[0]
		a.replies = a.replies[1:]
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

// URL returns the endpoint address.
func (a *Assistant) URL() string {
	return a.server.URL
}

// QueueReply appends a scripted reply.
func (a *Assistant) QueueReply(reply string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies = append(a.replies, reply)
}

// SetStatus makes every following call answer with the given HTTP
// status instead of a reply.
func (a *Assistant) SetStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

// RequestCount reports how many calls the endpoint received.
func (a *Assistant) RequestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

// Reset clears the script and received requests.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies = nil
	a.requests = nil
	a.status = http.StatusOK
}
