package boardcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-dashboard/internal/board"
	"github.com/goliatone/go-dashboard/internal/commands"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

const (
	refreshWidgetMessageType = "dashboard.board.widget.refresh"
	refreshAllMessageType    = "dashboard.board.refresh_all"
	exportBoardMessageType   = "dashboard.board.export"
	importBoardMessageType   = "dashboard.board.import"
)

// RefreshWidgetCommand re-runs the load lifecycle for one widget instance.
// This is the user-triggered retry path; loads are never retried on their
// own.
type RefreshWidgetCommand struct {
	WidgetID string `json:"widget_id"`
}

// Type implements command.Message.
func (RefreshWidgetCommand) Type() string { return refreshWidgetMessageType }

// Validate ensures required fields are present.
func (m RefreshWidgetCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WidgetID) == "" {
		errs["widget_id"] = validation.NewError("dashboard.board.widget.refresh.widget_id_required", "widget_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RefreshWidgetHandler wraps single-widget refresh.
type RefreshWidgetHandler struct {
	inner *commands.Handler[RefreshWidgetCommand]
}

// NewRefreshWidgetHandler constructs a handler wired to the provided board service.
func NewRefreshWidgetHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshWidgetCommand]) *RefreshWidgetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RefreshWidgetCommand) error {
		return service.RefreshWidget(ctx, strings.TrimSpace(msg.WidgetID))
	}

	handlerOpts := []commands.HandlerOption[RefreshWidgetCommand]{
		commands.WithLogger[RefreshWidgetCommand](baseLogger),
		commands.WithOperation[RefreshWidgetCommand]("board.widget.refresh"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshWidgetHandler{
		inner: commands.NewHandler[RefreshWidgetCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshWidgetCommand].
func (h *RefreshWidgetHandler) Execute(ctx context.Context, msg RefreshWidgetCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RefreshAllCommand reloads every widget instance concurrently.
type RefreshAllCommand struct{}

// Type implements command.Message.
func (RefreshAllCommand) Type() string { return refreshAllMessageType }

// Validate satisfies command.Message.
func (RefreshAllCommand) Validate() error {
	return validation.ValidateStruct(&RefreshAllCommand{})
}

// RefreshAllHandler wraps the full-grid refresh.
type RefreshAllHandler struct {
	inner *commands.Handler[RefreshAllCommand]
}

// NewRefreshAllHandler constructs a handler wired to the provided board service.
func NewRefreshAllHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshAllCommand]) *RefreshAllHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ RefreshAllCommand) error {
		service.RefreshAll(ctx)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RefreshAllCommand]{
		commands.WithLogger[RefreshAllCommand](baseLogger),
		commands.WithOperation[RefreshAllCommand]("board.refresh_all"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshAllHandler{
		inner: commands.NewHandler[RefreshAllCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshAllCommand].
func (h *RefreshAllHandler) Execute(ctx context.Context, msg RefreshAllCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportBoardCommand writes the current snapshot to a timestamped file in
// the output directory.
type ExportBoardCommand struct {
	OutputDir string `json:"output_dir"`
}

// Type implements command.Message.
func (ExportBoardCommand) Type() string { return exportBoardMessageType }

// Validate ensures required fields are present.
func (m ExportBoardCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.OutputDir) == "" {
		errs["output_dir"] = validation.NewError("dashboard.board.export.output_dir_required", "output_dir is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportBoardHandler wraps snapshot export.
type ExportBoardHandler struct {
	inner *commands.Handler[ExportBoardCommand]
}

// NewExportBoardHandler constructs a handler wired to the provided board service.
func NewExportBoardHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExportBoardCommand]) *ExportBoardHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExportBoardCommand) error {
		file, err := service.Export(ctx)
		if err != nil {
			return err
		}

		path := filepath.Join(strings.TrimSpace(msg.OutputDir), file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}

		logging.WithFields(baseLogger, map[string]any{
			"path":  path,
			"bytes": len(file.Data),
		}).Info("board.command.exported")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportBoardCommand]{
		commands.WithLogger[ExportBoardCommand](baseLogger),
		commands.WithOperation[ExportBoardCommand]("board.export"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportBoardHandler{
		inner: commands.NewHandler[ExportBoardCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportBoardCommand].
func (h *ExportBoardHandler) Execute(ctx context.Context, msg ExportBoardCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportBoardCommand replaces the grid with the widgets in an exported file.
// Data takes precedence when both fields are set.
type ImportBoardCommand struct {
	Path string `json:"path,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// Type implements command.Message.
func (ImportBoardCommand) Type() string { return importBoardMessageType }

// Validate ensures a payload source is present.
func (m ImportBoardCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Path) == "" && len(m.Data) == 0 {
		errs["path"] = validation.NewError("dashboard.board.import.source_required", "path or data is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportBoardHandler wraps snapshot import.
type ImportBoardHandler struct {
	inner *commands.Handler[ImportBoardCommand]
}

// NewImportBoardHandler constructs a handler wired to the provided board service.
func NewImportBoardHandler(service board.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportBoardCommand]) *ImportBoardHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportBoardCommand) error {
		data := msg.Data
		if len(data) == 0 {
			payload, err := os.ReadFile(strings.TrimSpace(msg.Path))
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			data = payload
		}

		if err := service.Import(ctx, data); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"bytes": len(data),
		}).Info("board.command.imported")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportBoardCommand]{
		commands.WithLogger[ImportBoardCommand](baseLogger),
		commands.WithOperation[ImportBoardCommand]("board.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportBoardHandler{
		inner: commands.NewHandler[ImportBoardCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportBoardCommand].
func (h *ImportBoardHandler) Execute(ctx context.Context, msg ImportBoardCommand) error {
	return h.inner.Execute(ctx, msg)
}
