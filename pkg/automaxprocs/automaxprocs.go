package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/runeforge-network/launchpad/pkg/logger"
	"github.com/runeforge-network/launchpad/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

// Init sets GOMAXPROCS to match the Linux container CPU quota, logging the
// result through the application logger. No-op on non-Linux systems and in
// environments without a configured CPU quota.
func Init() error {
	logger := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", Current()),
	)

	setMaxProcLogger := func(format string, v ...any) {
		fields := make([]slog.Attr, 0, 1)

		// maxprocs.Set passes the applied GOMAXPROCS value, except from
		// its undo function.
		if val, ok := utils.Optional(v); ok {
			// a GOMAXPROCS environment variable overrides the quota
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = Current()
			}
			if setmaxprocs, ok := val.(int); ok {
				fields = append(fields, slogx.Int("set_maxprocs", setmaxprocs))
			}
		}

		logger.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), fields...)
	}

	if _, err := maxprocs.Set(maxprocs.Logger(setMaxProcLogger), maxprocs.Min(1)); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Current returns the current value of GOMAXPROCS.
func Current() int {
	return runtime.GOMAXPROCS(0)
}
