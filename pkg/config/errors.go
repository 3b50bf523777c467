package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrReadingFile is returned when a provider table cannot be read
	ErrReadingFile = errors.New("failed to read provider table")

	// ErrInvalidProviderTable is returned when a provider table cannot be decoded or has invalid entries
	ErrInvalidProviderTable = errors.New("invalid provider table")
)
