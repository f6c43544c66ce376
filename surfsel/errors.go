package surfsel

import "errors"

// Errors
var (
	ErrConfigurationMissing = errors.New("threshold angle is not set")
	ErrDegenerateNormal     = errors.New("degenerate normal angle")
	ErrHostValueUnavailable = errors.New("host value unavailable")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrBadMesh              = errors.New("bad mesh description")
	ErrBadRecord            = errors.New("bad user value record")
)
