package dashboard

import "github.com/goliatone/go-dashboard/internal/runtimeconfig"

var (
	ErrCapacityInvalid         = runtimeconfig.ErrCapacityInvalid
	ErrAutoSaveIntervalInvalid = runtimeconfig.ErrAutoSaveIntervalInvalid
	ErrClockTickInvalid        = runtimeconfig.ErrClockTickInvalid
	ErrFetchTimeoutInvalid     = runtimeconfig.ErrFetchTimeoutInvalid
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	BoardConfig   = runtimeconfig.BoardConfig
	FetchConfig   = runtimeconfig.FetchConfig
	StorageConfig = runtimeconfig.StorageConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
