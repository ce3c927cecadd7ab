package logger

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rustyeddy/arbitrage/engine"
)

// Audit writes every engine.Event as a JSON line to a rotating file. The
// write path goes through a diode buffer so Record never blocks the
// caller; if the buffer overflows, events are dropped and counted.
type Audit struct {
	w   diode.Writer
	log zerolog.Logger
}

// OpenAudit appends to path. Dropped events are reported on warn.
func OpenAudit(path string, maxSizeMB int64, maxBackups int, warn zerolog.Logger) *Audit {
	rot := NewRotator(path, maxSizeMB, maxBackups)
	w := diode.NewWriter(rot, 1000, 10*time.Millisecond, func(missed int) {
		warn.Warn().Int("missed", missed).Msg("audit events dropped")
	})
	return &Audit{
		w:   w,
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

func (a *Audit) Record(ev engine.Event) {
	fields := zerolog.Dict()
	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = fields.Str(k, ev.Fields[k])
	}

	a.log.Log().
		Str("id", ev.ID).
		Time("at", ev.Time).
		Str("action", ev.Action).
		Int64("cycle", ev.CycleID).
		Int64("day", ev.DayID).
		Dict("fields", fields).
		Send()
}

// Close flushes pending events and closes the file.
func (a *Audit) Close() error {
	return a.w.Close()
}
