package httpapi

import (
	"context"
	"testing"
)

func TestIsHandlerSpan(t *testing.T) {
	if !isHandlerSpan("httpapi.Handler.SubmitTransfer") {
		t.Fatal("handler span names should be recorded")
	}
	for _, name := range []string{"httpapi.RequestLogging", "httpapi.writeJSON", ""} {
		if isHandlerSpan(name) {
			t.Fatalf("non-handler span %q should not be recorded", name)
		}
	}
}

func TestStartSpanWithoutParent(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := startSpan(ctx, "httpapi.Handler.GetLeaderboard")
	if gotCtx != ctx {
		t.Fatal("context should pass through when there is no parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatal("expected a non-recording span without a parent")
	}
}
