//go:build integration
// +build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

// composeCmd runs `docker compose <args...>` against the local stack.
func composeCmd(t *testing.T, ctx context.Context, args ...string) {
	t.Helper()

	cmd := exec.CommandContext(ctx, "docker", append([]string{"compose"}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose %v failed: %v\n%s", args, err, string(out))
	}
}

func restartWebContainer(t *testing.T, ctx context.Context) {
	t.Helper()
	composeCmd(t, ctx, "restart", "web")
}

func stopAPIContainer(t *testing.T, ctx context.Context) {
	t.Helper()
	composeCmd(t, ctx, "stop", "api")
}

func startAPIContainer(t *testing.T, ctx context.Context) {
	t.Helper()
	composeCmd(t, ctx, "start", "api")
}
