package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-quoteform/pkg/config"
	"github.com/goliatone/go-quoteform/pkg/model"
	"github.com/goliatone/go-quoteform/pkg/render"
	"github.com/goliatone/go-quoteform/pkg/state"
	"github.com/goliatone/go-quoteform/pkg/store"
	"github.com/goliatone/go-quoteform/pkg/validation"
	"github.com/goliatone/go-quoteform/pkg/wizard"
)

// Session is the controller surface the terminal wizard drives.
// *wizard.Controller satisfies it.
type Session interface {
	Config() *config.FormConfig
	Step() int
	Values() (model.Values, error)
	Status() state.Status
	Receipt() (store.Receipt, bool)
	Update(partial model.Partial) error
	Advance(ctx context.Context) (wizard.Result, error)
	Retreat() (wizard.Result, error)
}

// Navigation labels offered after each step.
const (
	ActionNext   = "Next"
	ActionSubmit = "Review and submit"
	ActionBack   = "Back"
	ActionCancel = "Cancel"
	skipChoice   = "(skip)"
)

// Wizard walks a session through every step in the terminal.
type Wizard struct {
	driver        PromptDriver
	out           io.Writer
	summary       render.Renderer
	theme         Theme
	logger        *slog.Logger
	confirmSubmit bool
	state         *State
}

// New constructs a terminal wizard. The survey driver is used unless
// WithPromptDriver overrides it.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		theme:         DefaultTheme,
		logger:        slog.Default(),
		confirmSubmit: true,
		state:         NewState(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver(w.out)
	}
	return w
}

// Run prompts for every step until the session succeeds, the user cancels
// or the submission is rejected. A failed insert offers a retry.
func (w *Wizard) Run(ctx context.Context, session Session) (wizard.Result, error) {
	if session == nil {
		return wizard.Result{}, ErrNoSession
	}
	cfg := session.Config()

	for {
		if err := ctx.Err(); err != nil {
			return wizard.Result{}, err
		}

		step := session.Step()
		stepCfg, ok := cfg.Step(step)
		if !ok {
			return wizard.Result{}, fmt.Errorf("tui: step %d is not configured", step)
		}
		if err := w.info(ctx, fmt.Sprintf("%sStep %d of %d: %s", w.theme.StepPrefix, step, cfg.StepCount(), stepCfg.Title)); err != nil {
			return wizard.Result{}, err
		}
		if stepCfg.Description != "" {
			if err := w.info(ctx, w.theme.InfoPrefix+stepCfg.Description); err != nil {
				return wizard.Result{}, err
			}
		}

		partial, err := w.promptStep(ctx, cfg, session, step, stepCfg)
		if err != nil {
			return wizard.Result{}, err
		}
		if err := session.Update(partial); err != nil {
			return wizard.Result{}, err
		}

		action, err := w.chooseAction(ctx, step, cfg.StepCount())
		if err != nil {
			return wizard.Result{}, err
		}
		switch action {
		case ActionCancel:
			return wizard.Result{}, ErrAborted
		case ActionBack:
			w.state.Clear()
			if _, err := session.Retreat(); err != nil {
				return wizard.Result{}, err
			}
			continue
		case ActionSubmit:
			proceed, err := w.review(ctx, session)
			if err != nil {
				return wizard.Result{}, err
			}
			if !proceed {
				continue
			}
		}

		result, err := session.Advance(ctx)
		done, err := w.handleAdvance(ctx, session, result, err)
		if done || err != nil {
			return result, err
		}
	}
}

func (w *Wizard) handleAdvance(ctx context.Context, session Session, result wizard.Result, err error) (bool, error) {
	var submitErr *wizard.SubmitError
	switch {
	case errors.As(err, &submitErr) && errors.Is(err, wizard.ErrSubmissionFailed):
		if infoErr := w.outcome(ctx, session); infoErr != nil {
			return true, infoErr
		}
		retry, confirmErr := w.driver.Confirm(ctx, ConfirmConfig{Message: "Try submitting again?", Default: true})
		if confirmErr != nil {
			return true, confirmErr
		}
		if !retry {
			return true, err
		}
		return false, nil
	case err != nil:
		if infoErr := w.info(ctx, w.theme.ErrorPrefix+wizard.UserMessage(err)); infoErr != nil {
			return true, infoErr
		}
		return true, err
	case result.Blocked():
		w.state.SetErrors(result.InvalidStep, result.Errors)
		for _, key := range result.Errors.Keys() {
			if infoErr := w.info(ctx, w.theme.ErrorPrefix+result.Errors.Field(key)); infoErr != nil {
				return true, infoErr
			}
		}
		for session.Step() > result.InvalidStep {
			if _, retreatErr := session.Retreat(); retreatErr != nil {
				return true, retreatErr
			}
		}
		return false, nil
	case result.Status.Succeeded():
		w.state.Clear()
		return true, w.outcome(ctx, session)
	default:
		w.state.Clear()
		return false, nil
	}
}

func (w *Wizard) promptStep(ctx context.Context, cfg *config.FormConfig, session Session, step int, stepCfg config.Step) (model.Partial, error) {
	values, err := session.Values()
	if err != nil {
		return nil, err
	}

	partial := make(model.Partial, len(stepCfg.Fields))
	for _, key := range stepCfg.Fields {
		field := cfg.Fields[key]
		if msg := w.state.ErrorFor(step, key); msg != "" {
			if err := w.info(ctx, w.theme.ErrorPrefix+msg); err != nil {
				return nil, err
			}
		}
		value, err := w.promptField(ctx, key, field, values)
		if err != nil {
			w.logger.Debug("prompt failed", "field", key, "error", err)
			return nil, err
		}
		partial[key] = value
	}
	return partial, nil
}

func (w *Wizard) promptField(ctx context.Context, key string, field config.Field, values model.Values) (any, error) {
	message := field.Label
	if !field.Rules.Required && field.Kind != model.KindBoolean {
		message += " (optional)"
	}

	switch field.Kind {
	case model.KindBoolean:
		help := field.Help
		if help != "" {
			message = field.Label + ": " + help
			help = ""
		}
		return w.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: values.Bool(key), Help: help})

	case model.KindChoice:
		options := field.Options
		if !field.Rules.Required {
			options = append([]string{skipChoice}, options...)
		}
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: optionIndex(options, values.String(key)),
			Help:         field.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) || options[idx] == skipChoice {
			return "", nil
		}
		return options[idx], nil

	case model.KindChoices:
		picked, err := w.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  field.Options,
			Defaults: optionIndices(field.Options, values.Strings(key)),
			Help:     field.Help,
		})
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(field.Options) {
				out = append(out, field.Options[idx])
			}
		}
		return out, nil

	default:
		if field.Multiline {
			return w.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: values.String(key), Help: field.Help})
		}
		label, rules := field.Label, field.Rules
		return w.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     values.String(key),
			Help:        field.Help,
			Placeholder: field.Placeholder,
			Validator: func(s string) error {
				if msg := validation.ValidateField(s, label, rules); msg != "" {
					return errors.New(msg)
				}
				return nil
			},
		})
	}
}

func (w *Wizard) chooseAction(ctx context.Context, step, count int) (string, error) {
	actions := []string{ActionNext}
	if step >= count {
		actions[0] = ActionSubmit
	}
	if step > 1 {
		actions = append(actions, ActionBack)
	}
	actions = append(actions, ActionCancel)

	idx, err := w.driver.Select(ctx, SelectConfig{Message: "What next?", Options: actions, DefaultIndex: 0})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return ActionNext, nil
	}
	return actions[idx], nil
}

func (w *Wizard) review(ctx context.Context, session Session) (bool, error) {
	if err := w.renderView(ctx, session); err != nil {
		return false, err
	}
	if !w.confirmSubmit {
		return true, nil
	}
	return w.driver.Confirm(ctx, ConfirmConfig{Message: "Submit this quote request?", Default: true})
}

func (w *Wizard) outcome(ctx context.Context, session Session) error {
	if w.summary == nil {
		return w.info(ctx, w.theme.InfoPrefix+session.Status().Message)
	}
	return w.renderView(ctx, session)
}

func (w *Wizard) renderView(ctx context.Context, session Session) error {
	if w.summary == nil {
		return nil
	}
	values, err := session.Values()
	if err != nil {
		return err
	}
	opts := render.RenderOptions{Status: session.Status()}
	if receipt, ok := session.Receipt(); ok {
		opts.Receipt = &receipt
	}
	view, err := render.BuildView(session.Config(), values, opts)
	if err != nil {
		return err
	}
	out, err := w.summary.Render(ctx, view)
	if err != nil {
		return err
	}
	return w.info(ctx, strings.TrimRight(string(out), "\n"))
}

func (w *Wizard) info(ctx context.Context, msg string) error {
	return w.driver.Info(ctx, msg)
}
