package fault

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify_TrustsStructuredErrors(t *testing.T) {
	err := &Error{Kind: KindInsufficientBalance, Code: CodeInsufficientBalance, Message: "need 42 more", Shortfall: "42"}
	c := Classify(err)
	if c.Kind != KindInsufficientBalance || c.Code != CodeInsufficientBalance {
		t.Fatalf("Classify(structured) = %s/%s", c.Kind, c.Code)
	}
	if c.Message != "need 42 more" {
		t.Errorf("Message = %q", c.Message)
	}
	if c.UserMessage != userMessages[CodeInsufficientBalance] {
		t.Errorf("UserMessage = %q", c.UserMessage)
	}
}

func TestClassify_StructuredErrorThroughWrapping(t *testing.T) {
	inner := &Error{Kind: KindUpload, Code: CodeUploadFailed, Message: "upload failed"}
	wrapped := fmt.Errorf("while storing: %w", inner)
	if c := Classify(wrapped); c.Kind != KindUpload {
		t.Fatalf("Classify(wrapped structured) = %s, want Upload", c.Kind)
	}
}

func TestClassify_SubstringMatching(t *testing.T) {
	cases := []struct {
		msg      string
		wantKind Kind
		wantCode string
	}{
		{"bundler returned 500", KindUpload, CodeUploadFailed},
		{"irys: insufficient funds for upload", KindInsufficientBalance, CodeInsufficientBalance},
		{"gateway: failed to fetch object", KindRetrieve, CodeRetrieveFailed},
		{"arweave download interrupted", KindRetrieve, CodeRetrieveFailed},
		{"permanent storage unavailable", KindUpload, CodeUploadFailed},
		{"user rejected the request in metamask", KindWallet, CodeWalletRejected},
		{"wallet is on the wrong chain", KindWallet, CodeWalletMismatch},
		{"no wallet provider found", KindWallet, CodeWalletNotConnected},
		{"request timed out after 30s", KindTimeout, CodeTimeout},
		{"dial tcp 10.0.0.1:443: connection refused", KindNetwork, CodeNetwork},
		{"something inexplicable", KindUnknown, CodeUnknown},
	}
	for _, tc := range cases {
		c := Classify(errors.New(tc.msg))
		if c.Kind != tc.wantKind || c.Code != tc.wantCode {
			t.Errorf("Classify(%q) = %s/%s, want %s/%s", tc.msg, c.Kind, c.Code, tc.wantKind, tc.wantCode)
		}
	}
}

func TestClassify_DeadlineExceededIsTimeout(t *testing.T) {
	err := fmt.Errorf("rpc: %w", context.DeadlineExceeded)
	if c := Classify(err); c.Kind != KindTimeout {
		t.Fatalf("Classify(DeadlineExceeded) = %s, want Timeout", c.Kind)
	}
}

func TestClassify_UserMessageNeverEchoesTransportText(t *testing.T) {
	raw := "dial tcp: lookup node.internal: no such host (secret-token=abc)"
	c := Classify(errors.New(raw))
	if c.UserMessage == raw || c.UserMessage == "" {
		t.Fatalf("UserMessage leaked or empty: %q", c.UserMessage)
	}
	if _, ok := findUserMessage(c.UserMessage); !ok {
		t.Fatalf("UserMessage %q is not from the fixed table", c.UserMessage)
	}
}

func findUserMessage(msg string) (string, bool) {
	for code, m := range userMessages {
		if m == msg {
			return code, true
		}
	}
	return "", false
}

func TestIsKindAndHelpers(t *testing.T) {
	err := fmt.Errorf("outer: %w", &Error{Kind: KindValidation, Code: CodeValidationFailed, Message: "2 errors", Fields: []string{"a", "b"}})
	if !IsKind(err, KindValidation) {
		t.Fatal("IsKind failed through wrapping")
	}
	if IsKind(err, KindUpload) {
		t.Fatal("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindValidation) {
		t.Fatal("IsKind matched a plain error")
	}
	if got := Code(err); got != CodeValidationFailed {
		t.Errorf("Code = %q", got)
	}
	if got := Code(errors.New("plain")); got != "" {
		t.Errorf("Code(plain) = %q, want empty", got)
	}
	short := &Error{Kind: KindInsufficientBalance, Code: CodeInsufficientBalance, Shortfall: "77"}
	if got := Shortfall(short); got != "77" {
		t.Errorf("Shortfall = %q", got)
	}
}

func TestEveryKindHasDefaultCodeAndMessage(t *testing.T) {
	kinds := []Kind{
		KindStructure, KindValidation, KindInsufficientBalance, KindArithmetic,
		KindUpload, KindRetrieve, KindWallet, KindNetwork, KindTimeout, KindUnknown,
	}
	for _, k := range kinds {
		code, ok := kindDefaultCode[k]
		if !ok {
			t.Errorf("kind %s has no default code", k)
			continue
		}
		if userMessages[code] == "" {
			t.Errorf("code %s has no user message", code)
		}
	}
}
