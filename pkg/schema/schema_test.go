package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
)

const leadJSON = `{
  "ffuQuantity": "11-50",
  "ffuSize": "2'x4'",
  "filtrationLevel": "HEPA 99.99% @ 0.3µm",
  "specificFeatures": ["Low profile"],
  "application": "New Cleanroom Build",
  "fullName": "Jane Doe",
  "businessEmail": "jane@acme.com",
  "phoneNumber": "(555) 123-4567",
  "companyName": "Acme Labs",
  "projectLocation": "Austin, TX",
  "consentGiven": true
}`

func janeValues(t *testing.T) model.Values {
	t.Helper()
	doc := MustNewDocument(SourceFromStdin(), []byte(leadJSON))
	partial, err := doc.Partial()
	if err != nil {
		t.Fatalf("partial: %v", err)
	}
	return model.Values(partial)
}

func TestDocument_PartialJSON(t *testing.T) {
	values := janeValues(t)
	if got := values.String("fullName"); got != "Jane Doe" {
		t.Fatalf("fullName = %q", got)
	}
	if diff := cmp.Diff([]string{"Low profile"}, values.Strings("specificFeatures")); diff != "" {
		t.Fatalf("features (-want +got):\n%s", diff)
	}
	if !values.Bool("consentGiven") {
		t.Fatalf("expected consent")
	}
}

func TestDocument_PartialYAML(t *testing.T) {
	doc := MustNewDocument(SourceFromFS("lead.yaml"), []byte("ffuQuantity: 1-10\nspecificFeatures:\n  - Integrated controls\nconsentGiven: true\n"))
	partial, err := doc.Partial()
	if err != nil {
		t.Fatalf("partial: %v", err)
	}
	want := model.Partial{
		"ffuQuantity":      "1-10",
		"specificFeatures": []any{"Integrated controls"},
		"consentGiven":     true,
	}
	if diff := cmp.Diff(want, partial); diff != "" {
		t.Fatalf("partial (-want +got):\n%s", diff)
	}
}

func TestDocument_Rejects(t *testing.T) {
	if _, err := NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromStdin(), []byte("  \n")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	doc := MustNewDocument(SourceFromFS("list.yaml"), []byte("- a\n- b\n"))
	if _, err := doc.Partial(); err == nil || !strings.Contains(err.Error(), "list.yaml") {
		t.Fatalf("expected parse error naming the document, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lead.json")
	if err := os.WriteFile(path, []byte(leadJSON), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := ReadFile(path, nil)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if doc.Source().Kind() != SourceKindFile || doc.Location() != path {
		t.Fatalf("unexpected source %s %s", doc.Source().Kind(), doc.Location())
	}

	doc, err = ReadFile("-", strings.NewReader(leadJSON))
	if err != nil {
		t.Fatalf("read stdin: %v", err)
	}
	if doc.Source().Kind() != SourceKindStdin || doc.Location() != "-" {
		t.Fatalf("unexpected stdin source %s %s", doc.Source().Kind(), doc.Location())
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadFS(t *testing.T) {
	fsys := fstest.MapFS{"leads/jane.json": {Data: []byte(leadJSON)}}
	doc, err := ReadFS(fsys, "leads/jane.json")
	if err != nil {
		t.Fatalf("read fs: %v", err)
	}
	if doc.Source().Kind() != SourceKindFS {
		t.Fatalf("unexpected kind %s", doc.Source().Kind())
	}
	raw := doc.Raw()
	raw[0] = 'x'
	if doc.Raw()[0] != '{' {
		t.Fatalf("Raw must return a copy")
	}
}

func TestRecord_Shape(t *testing.T) {
	cfg := config.MustDefault()
	s := Record(cfg)

	if !s.Type.Is("object") {
		t.Fatalf("expected object schema, got %v", s.Type)
	}
	wantRequired := []string{
		"application", "businessEmail", "companyName", "consentGiven", "ffuQuantity",
		"ffuSize", "filtrationLevel", "fullName", "phoneNumber", "projectLocation",
	}
	if diff := cmp.Diff(wantRequired, s.Required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}

	email := s.Properties["businessEmail"].Value
	if email.Format != "email" || email.Title != "Business Email" {
		t.Fatalf("unexpected email schema %+v", email)
	}
	if email.Extensions[ExtensionStep] != 3 {
		t.Fatalf("expected email on step 3, got %v", email.Extensions[ExtensionStep])
	}

	airflow := s.Properties["airflowRequirements"].Value
	if airflow.MinLength != 0 || airflow.MaxLength == nil || *airflow.MaxLength != 200 {
		t.Fatalf("unexpected airflow bounds min=%d max=%v", airflow.MinLength, airflow.MaxLength)
	}

	features := s.Properties["specificFeatures"].Value
	if !features.Type.Is("array") || features.MinItems != 0 || features.Items == nil {
		t.Fatalf("unexpected features schema %+v", features)
	}

	consent := s.Properties["consentGiven"].Value
	if diff := cmp.Diff([]any{true}, consent.Enum); diff != "" {
		t.Fatalf("consent enum (-want +got):\n%s", diff)
	}

	if hp, ok := s.Properties[cfg.Honeypot]; !ok || hp.Value.Extensions[ExtensionHoneypot] != true {
		t.Fatalf("expected honeypot property")
	}
}

func TestJSON_Decodes(t *testing.T) {
	raw, err := JSON(config.MustDefault())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["type"] != "object" || decoded[ExtensionTable] != "ffu_quote_requests" {
		t.Fatalf("unexpected document %v", decoded)
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok || props["fullName"] == nil {
		t.Fatalf("missing properties in %s", raw)
	}
}

func TestCheck(t *testing.T) {
	cfg := config.MustDefault()
	if issues := Check(cfg, janeValues(t)); len(issues) != 0 {
		t.Fatalf("expected valid record, got %+v", issues)
	}

	values := janeValues(t)
	values["consentGiven"] = false
	values["ffuSize"] = "3' x 3'"
	issues := Check(cfg, values)
	if len(issues) < 2 {
		t.Fatalf("expected at least two issues, got %+v", issues)
	}

	optional := janeValues(t)
	optional["airflowRequirements"] = ""
	if issues := Check(cfg, optional); len(issues) != 0 {
		t.Fatalf("blank optional text should pass, got %+v", issues)
	}
}
