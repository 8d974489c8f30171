package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/avirtanen/gymprogress/internal/e2etest"
	"github.com/avirtanen/gymprogress/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "GYMPROGRESS_SQLITE_URL":
		return ":memory:", true
	case "GYMPROGRESS_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

func Test_application_journal(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if doc.Find("p:contains('No entries yet.')").Length() != 1 {
		t.Error("expected empty journal message on fresh database")
	}

	doc, err = client.SubmitForm(ctx, doc, "/entries", map[string]string{
		"Date":     "2024-03-04",
		"Exercise": "Bench Press",
		"Weight":   "80",
		"Reps":     "10,8,6",
	})
	if err != nil {
		t.Fatalf("Failed to submit entry form: %v", err)
	}

	if doc.Find("td a:contains('Bench Press')").Length() != 1 {
		t.Error("expected the new entry to show up in the journal table")
	}
	if doc.Find("td:contains('10,8,6')").Length() != 1 {
		t.Error("expected the logged reps to show up in the journal table")
	}
}

func Test_application_journalEntryEdit(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	doc, err = client.SubmitForm(ctx, doc, "/entries", map[string]string{
		"Date":     "2024-03-04",
		"Exercise": "Squat",
		"Weight":   "100",
		"Reps":     "5,5,5",
	})
	if err != nil {
		t.Fatalf("Failed to submit entry form: %v", err)
	}

	editPath, ok := doc.Find("td a[href$='/edit']").First().Attr("href")
	if !ok {
		t.Fatal("expected an edit link in the journal table")
	}
	doc, err = client.GetDoc(ctx, editPath)
	if err != nil {
		t.Fatalf("Failed to get edit page: %v", err)
	}
	if doc.Find("input[name=weight][value='100']").Length() != 1 {
		t.Error("expected the edit form prefilled with the current weight")
	}

	doc, err = client.SubmitForm(ctx, doc, strings.TrimSuffix(editPath, "/edit"), map[string]string{
		"Weight": "102.5",
		"Reps":   "5,5,4",
	})
	if err != nil {
		t.Fatalf("Failed to submit edit form: %v", err)
	}

	if doc.Find("td:contains('102.5 kg')").Length() != 1 {
		t.Error("expected the updated weight in the journal table")
	}
	if doc.Find("td:contains('5,5,4')").Length() != 1 {
		t.Error("expected the updated reps in the journal table")
	}
	// Fields left out of the form keep their values.
	if doc.Find("td a:contains('Squat')").Length() != 1 {
		t.Error("expected the exercise name to survive the edit")
	}
}

func Test_application_csrfProtection(t *testing.T) {
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	// A POST without the CSRF token must be rejected.
	resp, err := http.Post(server.URL()+"/entries", "application/x-www-form-urlencoded",
		strings.NewReader("exercise=Bench+Press&weight=80&reps=10"))
	if err != nil {
		t.Fatalf("Failed to POST: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
