package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-quoteform/pkg/model"
)

// JaneDoe returns a complete, valid quote request for the default form.
func JaneDoe() model.QuoteRequest {
	return model.QuoteRequest{
		FFUQuantity:         "11-50",
		FFUSize:             "2'x4'",
		FiltrationLevel:     "HEPA 99.99% @ 0.3µm",
		AirflowRequirements: "",
		SpecificFeatures:    []string{"Low profile"},
		Application:         "New Cleanroom Build",
		FullName:            "Jane Doe",
		BusinessEmail:       "jane@acme.com",
		PhoneNumber:         "(555) 123-4567",
		CompanyName:         "Acme Labs",
		ProjectLocation:     "Austin, TX",
		ConsentGiven:        true,
	}
}

// JaneDoeValues is the Values view of JaneDoe.
func JaneDoeValues(t *testing.T) model.Values {
	t.Helper()
	values, err := model.ValuesOf(JaneDoe())
	if err != nil {
		t.Fatalf("values of fixture: %v", err)
	}
	return values
}

// JaneDoeSteps splits JaneDoe into the partial updates a user enters on
// each of the three steps.
func JaneDoeSteps() []model.Partial {
	q := JaneDoe()
	return []model.Partial{
		{"ffuQuantity": q.FFUQuantity, "ffuSize": q.FFUSize},
		{"filtrationLevel": q.FiltrationLevel, "airflowRequirements": q.AirflowRequirements, "specificFeatures": q.SpecificFeatures},
		{
			"application":     q.Application,
			"fullName":        q.FullName,
			"businessEmail":   q.BusinessEmail,
			"phoneNumber":     q.PhoneNumber,
			"companyName":     q.CompanyName,
			"projectLocation": q.ProjectLocation,
			"consentGiven":    q.ConsentGiven,
		},
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertContains fails the test for every fragment missing from got.
func AssertContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q\n--- output ---\n%s", fragment, got)
		}
	}
}

// AssertNotContains fails the test for every fragment present in got.
func AssertNotContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(got, fragment) {
			t.Errorf("output unexpectedly contains %q\n--- output ---\n%s", fragment, got)
		}
	}
}

// CaptureOutput runs fn with a buffer and returns what it wrote.
func CaptureOutput(t *testing.T, fn func(io.Writer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return buf.String()
}
