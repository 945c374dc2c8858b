package handle

import (
	"io"
	"log/slog"
)

// discardLogger is used when Options.Logger is nil.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options controls Manager construction. The zero value (or a nil *Options)
// yields RecycleLowest, DontTrack, the full handle space and no logging.
type Options struct {
	// AllocPolicy picks between recycling the lowest released handle and
	// always minting a new one. Recycling needs ReleasePolicy Tracked.
	AllocPolicy AllocPolicy

	// ReleasePolicy decides whether released handles are remembered.
	ReleasePolicy ReleasePolicy

	// Limit is the exclusive upper bound of the handle space: Next never
	// returns a value >= Limit and fails with ErrOutOfHandles once the
	// counter reaches it.
	// Default: MaxHandle
	Limit Handle

	// Logger receives Debug records for rejected operations.
	// Default: output discarded
	Logger *slog.Logger
}

// fillDefaults replaces unset fields with their defaults.
func (o *Options) fillDefaults() {
	if o.Limit == 0 {
		o.Limit = MaxHandle
	}
	if o.Logger == nil {
		o.Logger = discardLogger
	}
}

// validate rejects policy values outside the known set.
func (o *Options) validate() error {
	if !o.AllocPolicy.Valid() {
		return policyError("new", o.AllocPolicy.String())
	}
	if !o.ReleasePolicy.Valid() {
		return policyError("new", o.ReleasePolicy.String())
	}
	return nil
}
