package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-quoteform/internal/logging"
	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/renderers/text"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) printed(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

type flakyStore struct {
	mu       sync.Mutex
	failures int
	records  []store.Record
}

func (s *flakyStore) Insert(_ context.Context, record store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("connection reset")
	}
	s.records = append(s.records, record)
	return nil
}

const (
	qty1150      = 1
	size2x4      = 2
	actionFirst  = 0
	actionSecond = 1
)

var contactInputs = []string{"Jane Doe", "jane@acme.com", "(555) 123-4567", "Acme Labs", "Austin, TX"}

func newSession(t *testing.T, st store.RecordStore) *wizard.Controller[model.QuoteRequest] {
	t.Helper()
	ctrl, err := wizard.New(config.MustDefault(), model.NewQuoteRequest(), st, wizard.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func newWizard(t *testing.T, driver PromptDriver) *Wizard {
	t.Helper()
	summary, err := text.New()
	if err != nil {
		t.Fatalf("text renderer: %v", err)
	}
	return New(WithPromptDriver(driver), WithSummaryRenderer(summary), WithLogger(logging.Discard()))
}

func TestWizard_CompletesThreeSteps(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{qty1150, size2x4, actionFirst, 0, actionFirst, 0, actionFirst},
		inputs:    append([]string{""}, contactInputs...),
		multiIdx:  [][]int{{0}},
		confirm:   []bool{true, true},
	}
	st := store.NewMemory()
	session := newSession(t, st)

	result, err := newWizard(t, driver).Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Status.Succeeded() {
		t.Fatalf("expected success, got %+v", result.Status)
	}
	if st.Len() != 1 {
		t.Fatalf("expected one stored record, got %d", st.Len())
	}

	record := st.Records()[0]
	if got := record.Fields.String("ffuSize"); got != "2'x4'" {
		t.Fatalf("ffuSize = %q", got)
	}
	if got := record.Fields.Strings("specificFeatures"); len(got) != 1 || got[0] != "Low profile" {
		t.Fatalf("features = %v", got)
	}
	if !driver.printed("Step 3 of 3") || !driver.printed("Full Name: Jane Doe") {
		t.Fatalf("expected step headers and review summary, got %v", driver.infoMessages)
	}
	if !driver.printed(config.DefaultSuccessMessage) {
		t.Fatalf("expected success message, got %v", driver.infoMessages)
	}
}

func TestWizard_BackRepromptsPreviousStep(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			qty1150, size2x4, actionFirst,
			0, actionSecond,
			qty1150, size2x4, actionFirst,
			0, actionFirst,
			0, actionFirst,
		},
		inputs:   append([]string{"650 CFM", "650 CFM"}, contactInputs...),
		multiIdx: [][]int{{0}, {0, 3}},
		confirm:  []bool{true, true},
	}
	st := store.NewMemory()

	if _, err := newWizard(t, driver).Run(context.Background(), newSession(t, st)); err != nil {
		t.Fatalf("run: %v", err)
	}
	fields := st.Records()[0].Fields
	if got := fields.String("airflowRequirements"); got != "650 CFM" {
		t.Fatalf("airflow = %q", got)
	}
	if got := fields.Strings("specificFeatures"); len(got) != 2 {
		t.Fatalf("features = %v", got)
	}
}

func TestWizard_BlockedSubmitShowsErrors(t *testing.T) {
	badContact := []string{"Jane Doe", "jane@gmail.com", "555-1234", "Acme Labs", "Austin, TX"}
	driver := &stubDriver{
		selectIdx: []int{qty1150, size2x4, actionFirst, 0, actionFirst, 0, actionFirst, 0, actionFirst},
		inputs:    append(append([]string{""}, badContact...), contactInputs...),
		multiIdx:  [][]int{{}},
		confirm:   []bool{true, true, true, true},
	}
	st := store.NewMemory()

	if _, err := newWizard(t, driver).Run(context.Background(), newSession(t, st)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.printed("Please enter a business email address") || !driver.printed("Please enter a valid phone number") {
		t.Fatalf("expected validation messages, got %v", driver.infoMessages)
	}
	if st.Len() != 1 {
		t.Fatalf("expected a single insert after correction, got %d", st.Len())
	}
	if got := st.Records()[0].Fields.String("businessEmail"); got != "jane@acme.com" {
		t.Fatalf("businessEmail = %q", got)
	}
}

func TestWizard_RetryAfterFailure(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{qty1150, size2x4, actionFirst, 0, actionFirst, 0, actionFirst, 0, actionFirst},
		inputs:    append(append([]string{""}, contactInputs...), contactInputs...),
		multiIdx:  [][]int{{0}},
		confirm:   []bool{true, true, true, true, true},
	}
	st := &flakyStore{failures: 1}

	result, err := newWizard(t, driver).Run(context.Background(), newSession(t, st))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Status.Succeeded() {
		t.Fatalf("expected success after retry, got %+v", result.Status)
	}
	if !driver.printed(config.DefaultFailureMessage) {
		t.Fatalf("expected failure message, got %v", driver.infoMessages)
	}
	if len(st.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(st.records))
	}
}

func TestWizard_Cancel(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{qty1150, size2x4, actionSecond}}
	st := store.NewMemory()

	_, err := newWizard(t, driver).Run(context.Background(), newSession(t, st))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("cancel must not insert")
	}
}

func TestWizard_NilSession(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{})).Run(context.Background(), nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestState(t *testing.T) {
	s := NewState()
	s.SetErrors(3, map[string]string{"phoneNumber": "Please enter a valid phone number"})
	if !s.Pending(3) || s.Pending(2) {
		t.Fatalf("unexpected pending state")
	}
	if s.ErrorFor(3, "phoneNumber") == "" || s.ErrorFor(2, "phoneNumber") != "" {
		t.Fatalf("unexpected error lookup")
	}
	s.Clear()
	if s.Pending(3) {
		t.Fatalf("expected cleared state")
	}
}
