package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAssistantClientReply(t *testing.T) {
	t.Run("sends message and returns reply", func(t *testing.T) {
		var received assistantRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("decode request: %v", err)
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"reply": "hello there"})
		}))
		defer server.Close()

		client := NewAssistantClient(server.URL, time.Second)
		reply, err := client.Reply(context.Background(), "hi", []byte{0x01, 0x02})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply != "hello there" {
			t.Errorf("reply = %q", reply)
		}
		if received.Message != "hi" {
			t.Errorf("message = %q", received.Message)
		}
		if received.ImageData == "" {
			t.Error("image data not base64 encoded into the request")
		}
	})

	t.Run("falls back to message field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "alt field"})
		}))
		defer server.Close()

		client := NewAssistantClient(server.URL, time.Second)
		reply, err := client.Reply(context.Background(), "hi", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply != "alt field" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewAssistantClient(server.URL, time.Second)
		if _, err := client.Reply(context.Background(), "hi", nil); err == nil {
			t.Fatal("expected error for 502 response")
		}
	})

	t.Run("unconfigured endpoint", func(t *testing.T) {
		client := NewAssistantClient("", time.Second)
		if client.IsAvailable() {
			t.Error("expected unavailable without endpoint")
		}
		if _, err := client.Reply(context.Background(), "hi", nil); err == nil {
			t.Fatal("expected error without endpoint")
		}
	})
}
