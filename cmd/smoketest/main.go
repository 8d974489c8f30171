// Command smoketest checks that a running gymprogress instance serves its
// core pages. It is meant to run against a fresh deployment.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/avirtanen/gymprogress/internal/e2etest"
	"github.com/avirtanen/gymprogress/internal/testhelpers"
)

const smokeTimeout = 10 * time.Second

func testCorePages(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, smokeTimeout)
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return fmt.Errorf("wait for ready: %w", err)
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get journal: %w", err)
	}
	if doc.Find("h1:contains('Journal')").Length() != 1 {
		return fmt.Errorf("journal page heading missing")
	}

	if doc, err = client.GetDoc(ctx, "/trainer"); err != nil {
		return fmt.Errorf("get trainer: %w", err)
	}
	if doc.Find("form[action='/trainer/advice']").Length() != 1 {
		return fmt.Errorf("trainer page advice form missing")
	}

	if _, err = client.GetDoc(ctx, "/settings"); err != nil {
		return fmt.Errorf("get settings: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only the URL to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <url>")
		os.Exit(1)
	}
	url := strings.TrimSuffix(os.Args[1], "/")

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to create client", slog.Any("error", err))
		os.Exit(1)
	}

	if err = testCorePages(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "smoke test passed", slog.String("url", url))
}
