package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/observability"
	"github.com/stretchr/testify/assert"
)

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LoggingHooks(logging.NewWithWriter(&buf, slog.LevelDebug))

	hooks.OnNavigate(context.Background(), &domain.NavigationEvent{
		Type:        domain.EventNavigate,
		NavigatorID: "n1",
		Mode:        domain.ModePush,
		From:        "start",
		To:          "main",
		HistoryLen:  1,
	})

	out := buf.String()
	assert.Contains(t, out, "msg=navigate")
	assert.Contains(t, out, "navigator=n1 mode=push from=start to=main")
	assert.Contains(t, out, "history=1")
}
