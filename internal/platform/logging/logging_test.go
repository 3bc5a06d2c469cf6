package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"aria/internal/platform/logging"
)

func TestNewHonorsLevelAndVerbose(t *testing.T) {
	t.Parallel()
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	verbose, err := logging.New(logging.Options{Level: "error", Verbose: true})
	if err != nil {
		t.Fatalf("new verbose logger: %v", err)
	}
	if !verbose.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("verbose should enable debug")
	}
	if _, err := logging.New(logging.Options{Level: "chatty"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
	if logging.OrNop(nil) == nil {
		t.Fatalf("expected nop logger")
	}
}
