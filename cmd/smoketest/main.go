package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SAHU-01/VisaVerse/internal/e2etest"
	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/kb"
	"github.com/SAHU-01/VisaVerse/internal/logging"
)

// TestOnboardingAndAsk walks a fresh session through the onboarding wizard
// and asks one question against the deployed server.
func TestOnboardingAndAsk(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()
	var err error

	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}
	if err = client.DoJSON(ctx, http.MethodPost, "/api/onboarding/intent",
		map[string]string{"intent": "real_estate"}, nil); err != nil {
		return errors.Wrap(err, "toggle intent")
	}
	if err = client.DoJSON(ctx, http.MethodPost, "/api/onboarding/persona",
		map[string]string{"citizenship": "India", "residency": "United States", "investor_type": "nri"}, nil); err != nil {
		return errors.Wrap(err, "set persona")
	}
	if err = client.DoJSON(ctx, http.MethodPost, "/api/onboarding/country",
		map[string]string{"country": "United States"}, nil); err != nil {
		return errors.Wrap(err, "toggle country")
	}
	if err = client.DoJSON(ctx, http.MethodPost, "/api/onboarding/complete", nil, nil); err != nil {
		return errors.Wrap(err, "complete onboarding")
	}

	var result kb.AnswerResult
	if err = client.DoJSON(ctx, http.MethodPost, "/api/ask",
		map[string]string{"question": "Can an NRI buy residential property in the United States?"}, &result); err != nil {
		return errors.Wrap(err, "ask question")
	}
	if result.Answer.Summary == "" {
		return errors.New("answer has no summary")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestOnboardingAndAsk(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing onboarding and ask", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
