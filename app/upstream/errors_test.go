package upstream

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{402, KindQuota},
		{429, KindQuota},
		{408, KindTimeout},
		{504, KindTimeout},
		{400, KindMalformed},
		{404, KindMalformed},
		{500, KindNetwork},
		{502, KindNetwork},
	}

	for _, tt := range tests {
		err := classifyStatus("test", tt.status, "body")
		if err.Kind != tt.want {
			t.Errorf("Status %d: expected kind %s, got %s", tt.status, tt.want, err.Kind)
		}
	}
}

func TestClassifyStatusTruncatesBody(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	err := classifyStatus("test", 500, string(long))
	if len(err.Message) != 200 {
		t.Errorf("Expected message truncated to 200 characters, got %d", len(err.Message))
	}
}

func TestClassifyTransportDeadline(t *testing.T) {
	err := classifyTransport("test", fmt.Errorf("call failed: %w", context.DeadlineExceeded))
	if err.Kind != KindTimeout {
		t.Errorf("Expected timeout kind for deadline error, got %s", err.Kind)
	}
}

func TestClassifyTransportGeneric(t *testing.T) {
	err := classifyTransport("test", errors.New("connection refused"))
	if err.Kind != KindNetwork {
		t.Errorf("Expected network kind, got %s", err.Kind)
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("strategy failed: %w", missingKey("gemini"))
	if KindOf(wrapped) != KindAuth {
		t.Errorf("Expected auth kind through wrapping, got %s", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != KindNetwork {
		t.Error("Expected network kind for unclassified errors")
	}

	if !IsAuth(missingKey("serpapi")) {
		t.Error("IsAuth should report true for a missing key error")
	}
	if !IsQuota(classifyStatus("x", 429, "")) {
		t.Error("IsQuota should report true for HTTP 429")
	}
	if !IsTimeout(classifyStatus("x", 504, "")) {
		t.Error("IsTimeout should report true for HTTP 504")
	}
}

func TestErrorString(t *testing.T) {
	err := classifyStatus("gemini", 401, "bad key")
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error string should not be empty")
	}

	noStatus := missingKey("gemini")
	if noStatus.Error() == "" {
		t.Fatal("Error string should not be empty without status")
	}
}
