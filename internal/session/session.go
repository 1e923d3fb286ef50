// Package session runs the interactive editing loop behind the formlist CLI.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlist/internal/prompt"
	"github.com/goliatone/go-formlist/internal/scalar"
	"github.com/goliatone/go-formlist/pkg/i18n"
	"github.com/goliatone/go-formlist/pkg/list"
	"github.com/goliatone/go-formlist/pkg/model"
	"github.com/goliatone/go-formlist/pkg/registry"
)

const (
	actionAdd      = "Add"
	actionEdit     = "Edit"
	actionRemove   = "Remove"
	actionMove     = "Move"
	actionValidate = "Validate"
	actionDone     = "Done"
)

// Option customises a Session.
type Option func(*Session)

// WithCatalog sets the catalog used for capacity messages.
func WithCatalog(catalog *i18n.Catalog) Option {
	return func(s *Session) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session drives a list controller through a prompt driver.
type Session struct {
	driver  prompt.Driver
	catalog *i18n.Catalog
	logger  *slog.Logger
}

// New creates a session reading answers from driver.
func New(driver prompt.Driver, opts ...Option) *Session {
	s := &Session{
		driver:  driver,
		catalog: i18n.NewCatalog(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Edit loops over the action menu until the user picks Done. Nested lists
// are edited with the same loop.
func (s *Session) Edit(ctx context.Context, ctrl *list.Controller) error {
	if ctrl == nil {
		return errors.New("session: controller is required")
	}
	for {
		if err := s.showRows(ctx, ctrl); err != nil {
			return err
		}

		actions := s.actions(ctrl)
		choice, err := s.driver.Select(ctx, prompt.SelectConfig{
			Message: fmt.Sprintf("%s:", ctrl.Schema().DisplayLabel()),
			Options: actions,
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(actions) {
			return fmt.Errorf("session: invalid choice %d", choice)
		}

		action := actions[choice]
		s.logger.Debug("session: action", "field", ctrl.Schema().Name, "action", action)
		switch action {
		case actionAdd:
			err = s.add(ctx, ctrl)
		case actionEdit:
			err = s.edit(ctx, ctrl)
		case actionRemove:
			err = s.remove(ctx, ctrl)
		case actionMove:
			err = s.move(ctx, ctrl)
		case actionValidate:
			err = s.validate(ctx, ctrl)
		case actionDone:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) actions(ctrl *list.Controller) []string {
	actions := []string{actionAdd}
	if ctrl.Len() > 0 {
		actions = append(actions, actionEdit, actionRemove)
	}
	if ctrl.Len() > 1 {
		actions = append(actions, actionMove)
	}
	return append(actions, actionValidate, actionDone)
}

func (s *Session) showRows(ctx context.Context, ctrl *list.Controller) error {
	if ctrl.Len() == 0 {
		return s.driver.Info(ctx, fmt.Sprintf("%s: no %s", ctrl.Schema().DisplayLabel(), plural(ctrl.Entity(), 0)))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", ctrl.Schema().DisplayLabel())
	for _, label := range rowLabels(ctrl) {
		fmt.Fprintf(&b, "\n  %s", label)
	}
	return s.driver.Info(ctx, b.String())
}

func (s *Session) add(ctx context.Context, ctrl *list.Controller) error {
	schema := ctrl.Schema()
	ok, err := ctrl.AddItem()
	if err != nil {
		return err
	}
	if !ok {
		return s.driver.Info(ctx, s.catalog.MaxItems(schema.DisplayLabel(), schema.EntityName(), schema.Max))
	}
	return s.editChild(ctx, ctrl, ctrl.Len()-1)
}

func (s *Session) edit(ctx context.Context, ctrl *list.Controller) error {
	index, err := s.pickRow(ctx, ctrl, "Edit which?")
	if err != nil {
		return err
	}
	return s.editChild(ctx, ctrl, index)
}

func (s *Session) editChild(ctx context.Context, ctrl *list.Controller, index int) error {
	switch child := ctrl.Child(index).(type) {
	case *scalar.Editor:
		return s.editScalar(ctx, child, index)
	case *list.Controller:
		return s.Edit(ctx, child)
	default:
		return s.driver.Info(ctx, fmt.Sprintf("%s %d cannot be edited here", ctrl.Entity(), index+1))
	}
}

func (s *Session) editScalar(ctx context.Context, editor *scalar.Editor, index int) error {
	schema := editor.Schema()
	current, _ := editor.Value()
	message := fmt.Sprintf("%s %d:", schema.DisplayLabel(), index+1)
	if schema.DisplayLabel() == "" {
		message = fmt.Sprintf("Value %d:", index+1)
	}

	switch schema.Type {
	case model.TypeBoolean:
		value, _ := current.(bool)
		answer, err := s.driver.Confirm(ctx, prompt.ConfirmConfig{Message: message, Default: value})
		if err != nil {
			return err
		}
		editor.Set(answer)
	case model.TypeNumber:
		answer, err := s.driver.Input(ctx, prompt.InputConfig{
			Message: message,
			Default: formatValue(current),
			Validator: func(text string) error {
				_, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
				return err
			},
		})
		if err != nil {
			return err
		}
		number, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			return fmt.Errorf("session: %q is not a number: %w", answer, err)
		}
		editor.Set(number)
	default:
		answer, err := s.driver.Input(ctx, prompt.InputConfig{Message: message, Default: formatValue(current)})
		if err != nil {
			return err
		}
		editor.Set(answer)
	}
	return nil
}

func (s *Session) remove(ctx context.Context, ctrl *list.Controller) error {
	index, err := s.pickRow(ctx, ctrl, "Remove which?")
	if err != nil {
		return err
	}
	ctrl.RemoveItem(index)
	return nil
}

func (s *Session) move(ctx context.Context, ctrl *list.Controller) error {
	from, err := s.pickRow(ctx, ctrl, "Move which?")
	if err != nil {
		return err
	}
	positions := make([]string, ctrl.Len())
	for i := range positions {
		positions[i] = strconv.Itoa(i + 1)
	}
	to, err := s.driver.Select(ctx, prompt.SelectConfig{
		Message:      "To position:",
		Options:      positions,
		DefaultIndex: from,
	})
	if err != nil {
		return err
	}
	if to < 0 || to >= ctrl.Len() {
		return fmt.Errorf("session: invalid position %d", to)
	}
	if to != from {
		ctrl.MoveItem(from, to)
	}
	return nil
}

func (s *Session) validate(ctx context.Context, ctrl *list.Controller) error {
	if ctrl.Validate() {
		return s.driver.Info(ctx, "valid")
	}
	var b strings.Builder
	b.WriteString("invalid:")
	for _, msg := range collectErrors(ctrl) {
		fmt.Fprintf(&b, "\n  - %s", msg)
	}
	return s.driver.Info(ctx, b.String())
}

func (s *Session) pickRow(ctx context.Context, ctrl *list.Controller, message string) (int, error) {
	index, err := s.driver.Select(ctx, prompt.SelectConfig{
		Message: message,
		Options: rowLabels(ctrl),
	})
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= ctrl.Len() {
		return 0, fmt.Errorf("session: invalid row %d", index)
	}
	return index, nil
}

type errorSource interface {
	Errors() []string
}

// collectErrors gathers the list's own messages followed by those of its
// children, depth first.
func collectErrors(ctrl *list.Controller) []string {
	out := ctrl.Errors()
	ctrl.ForEachChild(func(index int, child registry.Child) {
		if nested, ok := child.(*list.Controller); ok {
			out = append(out, collectErrors(nested)...)
			return
		}
		if source, ok := child.(errorSource); ok {
			for _, msg := range source.Errors() {
				out = append(out, fmt.Sprintf("%d: %s", index+1, msg))
			}
		}
	})
	return out
}

func rowLabels(ctrl *list.Controller) []string {
	labels := make([]string, 0, ctrl.Len())
	ctrl.ForEachChild(func(index int, child registry.Child) {
		switch typed := child.(type) {
		case *list.Controller:
			labels = append(labels, fmt.Sprintf("%d: %d %s", index+1, typed.Len(), plural(typed.Entity(), typed.Len())))
		case *scalar.Editor:
			value, ok := typed.Value()
			if !ok || value == nil {
				labels = append(labels, fmt.Sprintf("%d: (empty)", index+1))
				return
			}
			labels = append(labels, fmt.Sprintf("%d: %s", index+1, formatValue(value)))
		default:
			labels = append(labels, fmt.Sprintf("%d: %T", index+1, child))
		}
	})
	return labels
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func plural(entity string, count int) string {
	if count == 1 {
		return entity
	}
	return entity + "s"
}
