package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081/v1/chat/completions", "test-key", time.Second)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.URL != "http://localhost:8081/v1/chat/completions" {
		t.Errorf("NewClient() URL = %v", client.URL)
	}
	if client.Token != "test-key" {
		t.Errorf("NewClient() Token = %v, want test-key", client.Token)
	}
	if client.Timeout != time.Second {
		t.Errorf("NewClient() Timeout = %v, want 1s", client.Timeout)
	}
	if client.client == nil {
		t.Error("NewClient() client should not be nil")
	}
}

func TestClient_Query(t *testing.T) {
	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantOK     bool
		wantAnswer string
		wantErrSub string
	}{
		{
			name: "successful query",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.Header.Get("Authorization") != "Bearer test-key" {
					t.Errorf("Authorization = %q, want Bearer test-key", r.Header.Get("Authorization"))
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  Paris \n"},"finish_reason":"stop"}]}`))
			},
			wantOK:     true,
			wantAnswer: "Paris",
		},
		{
			name: "error body",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			},
			wantErrSub: "boom",
		},
		{
			name: "openai style error object",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
			},
			wantErrSub: "model not found",
		},
		{
			name: "unknown shape shown verbatim",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"detail":"queued"}`))
			},
			wantErrSub: `{"detail":"queued"}`,
		},
		{
			name: "empty choices",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			wantErrSub: "no choices returned",
		},
		{
			name: "invalid json",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErrSub: "failed to decode response",
		},
		{
			name: "server error",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			},
			wantErrSub: "bad status 500",
		},
		{
			name: "unauthorized with choices-free json",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			},
			wantErrSub: "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "test-key", 0)
			resp := client.Query(context.Background(), Payload{
				Messages: []Message{UserMessage("What is the capital of France?")},
				Model:    "test-model",
			})

			if resp.OK() != tt.wantOK {
				t.Fatalf("Query() OK = %v, want %v (error %q)", resp.OK(), tt.wantOK, resp.Error)
			}
			if tt.wantOK {
				if resp.Error != "" {
					t.Errorf("Query() success carried error %q", resp.Error)
				}
				if got := resp.Answer(); got != tt.wantAnswer {
					t.Errorf("Query() answer = %q, want %q", got, tt.wantAnswer)
				}
				return
			}
			if len(resp.Choices) != 0 {
				t.Errorf("Query() failure carried %d choices", len(resp.Choices))
			}
			if !strings.Contains(resp.Error, tt.wantErrSub) {
				t.Errorf("Query() error = %q, want substring %q", resp.Error, tt.wantErrSub)
			}
		})
	}
}

func TestClient_Query_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "test-key", 0)

	var resp Response
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Query() panicked: %v", r)
			}
		}()
		resp = client.Query(context.Background(), Payload{Model: "m"})
	}()

	if resp.OK() {
		t.Fatal("Query() against closed server should fail")
	}
	if !strings.Contains(resp.Error, "failed to send request") {
		t.Errorf("Query() error = %q, want transport failure", resp.Error)
	}
}

func TestClient_Query_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "test-key", 20*time.Millisecond)
	resp := client.Query(context.Background(), Payload{Model: "m"})
	if resp.OK() || resp.Error == "" {
		t.Fatalf("Query() expected timeout failure, got %+v", resp)
	}
}

func TestClient_Query_SendsPayload(t *testing.T) {
	var got Payload
	var rawBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.Unmarshal(body, &got)
		_ = json.Unmarshal(body, &rawBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	want := Payload{
		Messages:  []Message{UserMessage("hi")},
		Model:     "m1",
		MaxTokens: 500,
		Stream:    Bool(false),
	}
	resp := NewClient(server.URL, "k", 0).Query(context.Background(), want)
	if !resp.OK() {
		t.Fatalf("Query() error = %v", resp.Error)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("server received %+v, want %+v", got, want)
	}
	if stream, ok := rawBody["stream"]; !ok || stream != false {
		t.Errorf("stream field = %v (present %v), want explicit false", stream, ok)
	}
}

func TestPayload_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		omitted []string
	}{
		{
			name: "council payload",
			payload: Payload{
				Messages:  []Message{UserMessage("Explain entropy")},
				Model:     "openai/gpt-oss-20b:nebius",
				MaxTokens: 500,
				Stream:    Bool(false),
			},
		},
		{
			name: "single query payload",
			payload: Payload{
				Messages: []Message{UserMessage("What is the capital of France?")},
				Model:    "openai/gpt-oss-20b:nebius",
			},
			omitted: []string{"max_tokens", "stream"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.payload)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var back Payload
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(back, tt.payload) {
				t.Errorf("round trip = %+v, want %+v", back, tt.payload)
			}
			for _, key := range tt.omitted {
				if strings.Contains(string(data), `"`+key+`"`) {
					t.Errorf("payload %s should omit %q", data, key)
				}
			}
		})
	}
}

func TestResponse_Shape(t *testing.T) {
	if (Response{}).OK() {
		t.Error("empty Response should not be OK")
	}
	if Failure("", nil).Error == "" {
		t.Error("Failure() with empty message should still carry an error")
	}
	ok := Response{Choices: []Choice{{Message: Message{Role: "assistant", Content: " X "}}}}
	if !ok.OK() {
		t.Error("Response with choices should be OK")
	}
	if ok.Answer() != "X" {
		t.Errorf("Answer() = %q, want X", ok.Answer())
	}
	if ok.Message().Role != "assistant" {
		t.Errorf("Message().Role = %q, want assistant", ok.Message().Role)
	}
}
