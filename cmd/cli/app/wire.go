//go:build wireinject
// +build wireinject

package app

import (
	"confedit/internal/adapters/differ"
	"confedit/internal/adapters/filesystem"
	"confedit/internal/adapters/logger"
	"confedit/internal/adapters/terminal"
	"confedit/internal/core"
	"confedit/internal/core/handler"
	"confedit/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	differ.ProvideDiffer,
	wire.Bind(new(ports.Differ), new(*differ.TextDiffer)),
	logger.ProvideLogger,
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
)

// ConfigSet loads the configuration from file, environment and flags
var ConfigSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideConfig,
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideLinePatcher,
	core.ProvideFileEditor,
	core.ProvideScriptLoader,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	ConfigSet,
	CoreSet,
)

func InjectConfigRepo(settings core.Settings) (core.ConfigRepository, error) {
	wire.Build(
		core.ProvideFileSystemConfigRepository,
		wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	)
	return &core.FileSystemConfigRepository{}, nil
}

func InjectSetCommandHandler(settings core.Settings) (handler.SetCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideSetCommandHandler,
	)
	return handler.SetCommandHandler{}, nil
}

func InjectRemoveCommandHandler(settings core.Settings) (handler.RemoveCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideRemoveCommandHandler,
	)
	return handler.RemoveCommandHandler{}, nil
}

func InjectLinesCommandHandler(settings core.Settings) (handler.LinesCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideLinesCommandHandler,
	)
	return handler.LinesCommandHandler{}, nil
}

func InjectApplyCommandHandler(settings core.Settings) (handler.ApplyCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideApplyCommandHandler,
	)
	return handler.ApplyCommandHandler{}, nil
}

func InjectConvertCommandHandler(settings core.Settings) (handler.ConvertCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideConvertCommandHandler,
	)
	return handler.ConvertCommandHandler{}, nil
}

func InjectDeleteCommandHandler(settings core.Settings) (handler.DeleteCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideDeleteCommandHandler,
	)
	return handler.DeleteCommandHandler{}, nil
}

func InjectInitializeCommandHandler(settings core.Settings) (handler.InitializeCommandHandler, error) {
	wire.Build(
		core.ProvideFileSystemConfigRepository,
		wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
		handler.ProvideInitializeCommandHandler,
	)
	return handler.InitializeCommandHandler{}, nil
}
