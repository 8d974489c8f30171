package main

import (
	"testing"

	"github.com/avirtanen/gymprogress/internal/e2etest"
	"github.com/avirtanen/gymprogress/internal/testhelpers"
)

func Test_application_settings(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/settings")
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}

	// Defaults before anything is saved.
	if doc.Find("input[name=goal][value=HYPERTROPHY][checked]").Length() != 1 {
		t.Error("expected hypertrophy as the default goal")
	}
	if doc.Find("input[name=days_per_week][value='3']").Length() != 1 {
		t.Error("expected 3 training days by default")
	}

	doc, err = client.SubmitForm(ctx, doc, "/settings", map[string]string{
		"Strength":             "STRENGTH",
		"Days per week":        "4",
		"Priority groups":      "BACK,LEGS",
		"Include warm-up sets": "on",
		"Automatic deload":     "on",
		"Deload interval":      "6",
	})
	if err != nil {
		t.Fatalf("Failed to submit settings form: %v", err)
	}

	if doc.Find("input[name=goal][value=STRENGTH][checked]").Length() != 1 {
		t.Error("expected strength goal after saving")
	}
	if doc.Find("input[name=days_per_week][value='4']").Length() != 1 {
		t.Error("expected 4 training days after saving")
	}
	if doc.Find("input[name=priority_groups][value='BACK,LEGS']").Length() != 1 {
		t.Error("expected priority groups after saving")
	}
	if doc.Find("input[name=deload_interval_weeks][value='6']").Length() != 1 {
		t.Error("expected 6 week deload interval after saving")
	}
}

func Test_application_settingsBounds(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/settings")
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}

	// Out-of-range numbers clamp to what the planner supports.
	doc, err = client.SubmitForm(ctx, doc, "/settings", map[string]string{
		"Days per week":   "9",
		"Deload interval": "0",
	})
	if err != nil {
		t.Fatalf("Failed to submit settings form: %v", err)
	}

	if doc.Find("input[name=days_per_week][value='6']").Length() != 1 {
		t.Error("expected training days clamped to 6")
	}
	if doc.Find("input[name=deload_interval_weeks][value='1']").Length() != 1 {
		t.Error("expected deload interval clamped to 1 week")
	}
}
