package errors

import (
	"fmt"
	"testing"
)

func TestWrapWithCode_KeepsCodeThroughChain(t *testing.T) {
	base := New("disk gone")
	err := fmt.Errorf("loading view: %w", WrapWithCode(base, CodeDataUnavailable, "fetch dataset"))

	if got := GetCode(err); got != CodeDataUnavailable {
		t.Fatalf("GetCode = %q, want %q", got, CodeDataUnavailable)
	}
	if !Is(err, base) {
		t.Fatalf("expected wrapped base error to be found")
	}
	if got := GetMessage(err); got != "fetch dataset" {
		t.Fatalf("GetMessage = %q", got)
	}
	if !IsDataUnavailable(err) {
		t.Fatalf("expected data unavailable classification")
	}
}

func TestWrap_NilStaysNil(t *testing.T) {
	if Wrap(nil, "x") != nil || WrapWithCode(nil, CodeBusy, "x") != nil {
		t.Fatalf("wrapping nil must return nil")
	}
}

func TestGetMessage_PlainError(t *testing.T) {
	if got := GetMessage(fmt.Errorf("plain")); got != "plain" {
		t.Fatalf("GetMessage = %q", got)
	}
	if GetMessage(nil) != "" {
		t.Fatalf("nil error must have empty message")
	}
}
