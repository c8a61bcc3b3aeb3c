package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yardstick/pkg/measure"
	"github.com/mesh-intelligence/yardstick/pkg/sqlite"
	"github.com/mesh-intelligence/yardstick/pkg/types"
)

// emit writes v as indented JSON in --json mode and text otherwise.
func (a *app) emit(cmd *cobra.Command, v any, text string) error {
	out := cmd.OutOrStdout()
	if !a.flags.jsonMode {
		_, err := fmt.Fprintln(out, text)
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// withLogbook attaches the configured logbook, runs fn, and detaches.
func (a *app) withLogbook(fn func(types.Logbook) error) error {
	cfg, err := a.logbookConfig()
	if err != nil {
		return sysError(err)
	}

	logbook := sqlite.NewBackend()
	if err := logbook.Attach(cfg); err != nil {
		return classify(fmt.Errorf("attach logbook: %w", err))
	}
	a.log.Debug("logbook attached", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	fnErr := fn(logbook)
	if err := logbook.Detach(); err != nil && fnErr == nil {
		return sysError(fmt.Errorf("detach logbook: %w", err))
	}
	return classify(fnErr)
}

// save records the result of an operation and returns the new entry ID.
func (a *app) save(operation string, args []string, result measure.Measurement, formatted string) (string, error) {
	entry := &types.Entry{
		Operation:   operation,
		Expression:  strings.Join(args, " "),
		Millimeters: result.Millimeters().String(),
		Unit:        result.Unit().Abbreviation(),
		Result:      result.String(),
		Formatted:   formatted,
	}
	var id string
	err := a.withLogbook(func(lb types.Logbook) error {
		var err error
		id, err = lb.Record(entry)
		return err
	})
	if err != nil {
		return "", err
	}
	a.log.Info("entry saved", "id", id, "operation", operation)
	return id, nil
}

// parseMeasurement reads a command argument such as "3ft" or "-1.5 yd".
func parseMeasurement(text string) (measure.Measurement, error) {
	m, err := measure.Parse(text)
	if err != nil {
		return m, classify(err)
	}
	return m, nil
}
