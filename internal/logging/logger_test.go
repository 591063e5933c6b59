package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"checkrun/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewJSONEmitsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("batch started", logging.Args(
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int(logging.FieldItemID, 7),
	)...)

	out := buf.String()
	for _, want := range []string{`"event_type":"batch_start"`, `"item_id":7`, "batch started"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q: %s", want, out)
		}
	}
}

func TestComponentLoggerToleratesNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "orchestrator")
	logger.Info("should not panic")
}
