package sta

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapReport adapts a *zap.Logger to the Report interface, the same
// file+line-qualified warn/error idiom lbfile.Reader.warnf uses, logged
// instead of just collected.
type ZapReport struct {
	logger *zap.Logger
}

// NewZapReport creates a ZapReport logging through logger.Named("sdf").
func NewZapReport(logger *zap.Logger) *ZapReport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapReport{logger: logger.Named("sdf")}
}

func (r *ZapReport) Warn(id string, format string, args ...any) {
	r.logger.Warn(fmt.Sprintf(format, args...), zap.String("id", id))
}

func (r *ZapReport) Error(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	r.logger.Error(msg)
	return fmt.Errorf("%s", msg)
}
