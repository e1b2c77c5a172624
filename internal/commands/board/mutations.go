package boardcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-dashboard/internal/board"
	"github.com/goliatone/go-dashboard/internal/commands"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

const (
	addWidgetMessageType       = "dashboard.board.widget.add"
	removeWidgetMessageType    = "dashboard.board.widget.remove"
	configureWidgetMessageType = "dashboard.board.widget.configure"
	reorderWidgetMessageType   = "dashboard.board.widget.reorder"
)

// AddWidgetCommand creates a widget instance of the given type.
type AddWidgetCommand struct {
	WidgetType string         `json:"widget_type"`
	Config     map[string]any `json:"config,omitempty"`
}

// Type implements command.Message.
func (AddWidgetCommand) Type() string { return addWidgetMessageType }

// Validate ensures required fields are present.
func (m AddWidgetCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WidgetType) == "" {
		errs["widget_type"] = validation.NewError("dashboard.board.widget.add.widget_type_required", "widget_type is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddWidgetHandler wraps widget creation.
type AddWidgetHandler struct {
	inner *commands.Handler[AddWidgetCommand]
}

// NewAddWidgetHandler constructs a handler wired to the provided board service.
func NewAddWidgetHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[AddWidgetCommand]) *AddWidgetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg AddWidgetCommand) error {
		instance, err := service.AddWidget(ctx, strings.TrimSpace(msg.WidgetType), msg.Config)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"widget_type": instance.Type,
			"widget_id":   instance.ID,
		}).Info("board.command.widget.added")
		return nil
	}

	handlerOpts := []commands.HandlerOption[AddWidgetCommand]{
		commands.WithLogger[AddWidgetCommand](baseLogger),
		commands.WithOperation[AddWidgetCommand]("board.widget.add"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AddWidgetHandler{
		inner: commands.NewHandler[AddWidgetCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AddWidgetCommand].
func (h *AddWidgetHandler) Execute(ctx context.Context, msg AddWidgetCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveWidgetCommand deletes a widget instance after explicit confirmation.
type RemoveWidgetCommand struct {
	WidgetID  string `json:"widget_id"`
	Confirmed bool   `json:"confirmed"`
}

// Type implements command.Message.
func (RemoveWidgetCommand) Type() string { return removeWidgetMessageType }

// Validate ensures required fields are present.
func (m RemoveWidgetCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WidgetID) == "" {
		errs["widget_id"] = validation.NewError("dashboard.board.widget.remove.widget_id_required", "widget_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemoveWidgetHandler wraps widget deletion.
type RemoveWidgetHandler struct {
	inner *commands.Handler[RemoveWidgetCommand]
}

// NewRemoveWidgetHandler constructs a handler wired to the provided board service.
func NewRemoveWidgetHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveWidgetCommand]) *RemoveWidgetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RemoveWidgetCommand) error {
		return service.RemoveWidget(ctx, board.RemoveRequest{
			ID:        strings.TrimSpace(msg.WidgetID),
			Confirmed: msg.Confirmed,
		})
	}

	handlerOpts := []commands.HandlerOption[RemoveWidgetCommand]{
		commands.WithLogger[RemoveWidgetCommand](baseLogger),
		commands.WithOperation[RemoveWidgetCommand]("board.widget.remove"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveWidgetHandler{
		inner: commands.NewHandler[RemoveWidgetCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RemoveWidgetCommand].
func (h *RemoveWidgetHandler) Execute(ctx context.Context, msg RemoveWidgetCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConfigureWidgetCommand commits edited form values into a widget instance.
type ConfigureWidgetCommand struct {
	WidgetID string         `json:"widget_id"`
	Form     map[string]any `json:"form"`
}

// Type implements command.Message.
func (ConfigureWidgetCommand) Type() string { return configureWidgetMessageType }

// Validate ensures required fields are present.
func (m ConfigureWidgetCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WidgetID) == "" {
		errs["widget_id"] = validation.NewError("dashboard.board.widget.configure.widget_id_required", "widget_id is required")
	}
	if m.Form == nil {
		errs["form"] = validation.NewError("dashboard.board.widget.configure.form_required", "form is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ConfigureWidgetHandler wraps configuration commits.
type ConfigureWidgetHandler struct {
	inner *commands.Handler[ConfigureWidgetCommand]
}

// NewConfigureWidgetHandler constructs a handler wired to the provided board service.
func NewConfigureWidgetHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ConfigureWidgetCommand]) *ConfigureWidgetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ConfigureWidgetCommand) error {
		instance, err := service.ConfigureWidget(ctx, strings.TrimSpace(msg.WidgetID), msg.Form)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"widget_type": instance.Type,
			"widget_id":   instance.ID,
			"title":       instance.Title,
		}).Info("board.command.widget.configured")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConfigureWidgetCommand]{
		commands.WithLogger[ConfigureWidgetCommand](baseLogger),
		commands.WithOperation[ConfigureWidgetCommand]("board.widget.configure"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConfigureWidgetHandler{
		inner: commands.NewHandler[ConfigureWidgetCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConfigureWidgetCommand].
func (h *ConfigureWidgetHandler) Execute(ctx context.Context, msg ConfigureWidgetCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReorderWidgetCommand moves a widget instance to a new grid position.
type ReorderWidgetCommand struct {
	WidgetID string `json:"widget_id"`
	NewIndex int    `json:"new_index"`
}

// Type implements command.Message.
func (ReorderWidgetCommand) Type() string { return reorderWidgetMessageType }

// Validate ensures required fields are present.
func (m ReorderWidgetCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WidgetID) == "" {
		errs["widget_id"] = validation.NewError("dashboard.board.widget.reorder.widget_id_required", "widget_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderWidgetHandler wraps grid reordering.
type ReorderWidgetHandler struct {
	inner *commands.Handler[ReorderWidgetCommand]
}

// NewReorderWidgetHandler constructs a handler wired to the provided board service.
func NewReorderWidgetHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderWidgetCommand]) *ReorderWidgetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ReorderWidgetCommand) error {
		return service.ReorderWidget(ctx, strings.TrimSpace(msg.WidgetID), msg.NewIndex)
	}

	handlerOpts := []commands.HandlerOption[ReorderWidgetCommand]{
		commands.WithLogger[ReorderWidgetCommand](baseLogger),
		commands.WithOperation[ReorderWidgetCommand]("board.widget.reorder"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderWidgetHandler{
		inner: commands.NewHandler[ReorderWidgetCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderWidgetCommand].
func (h *ReorderWidgetHandler) Execute(ctx context.Context, msg ReorderWidgetCommand) error {
	return h.inner.Execute(ctx, msg)
}
