package health

import "errors"

// ErrProbeTimeout is reported for probes still running when the deadline passes.
var ErrProbeTimeout = errors.New("health: probe timed out")
