package packaging

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// gitBinary is a variable so tests can point at a missing binary.
var gitBinary = "git"

// checkoutRevision clones repo into a temporary directory and checks out rev.
// The returned cleanup removes the clone.
func checkoutRevision(ctx context.Context, repo, rev string, log *zap.Logger) (string, func(), error) {
	if strings.HasPrefix(rev, "-") {
		return "", nil, fmt.Errorf("invalid revision %q", rev)
	}
	tmp, err := os.MkdirTemp("", "package-checkout-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmp) }

	log.Info("checking out revision", zap.String("repo", repo), zap.String("rev", rev))
	if err := runGit(ctx, "", "clone", "--quiet", repo, tmp); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clone %s: %w", repo, err)
	}
	if err := runGit(ctx, tmp, "checkout", "--quiet", rev); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("checkout %s: %w", rev, err)
	}
	return tmp, cleanup, nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, gitBinary, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
