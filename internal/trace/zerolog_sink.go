package trace

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/weave/internal/value"
)

// ZerologSink writes one JSON event per executed instruction. zerolog's
// zero-allocation event builder is a better fit for this per-instruction
// hot path than the application's charmbracelet/log-backed Logger, which
// is tuned for the much lower volume of human-facing CLI messages.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink builds a sink writing newline-delimited JSON to w.
func NewZerologSink(w io.Writer) *ZerologSink {
	return &ZerologSink{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// Emit writes evt as a single JSON log line.
func (s *ZerologSink) Emit(evt Event) {
	if s == nil {
		return
	}
	s.logger.Debug().
		Str("pipeline", evt.PipelineTag).
		Int("depth", evt.Depth).
		Int("cursor", evt.Cursor).
		Str("kind", evt.InstructionKind).
		Interface("input", value.ToAny(evt.Input)).
		Interface("result", value.ToAny(evt.Result)).
		Bool("floating", evt.Floating).
		Dur("duration", evt.Duration).
		Msg("instruction")
}
