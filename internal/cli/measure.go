package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yardstick/pkg/format"
	"github.com/mesh-intelligence/yardstick/pkg/measure"
	"github.com/mesh-intelligence/yardstick/pkg/types"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// result is the JSON shape shared by convert, format, and calc.
type result struct {
	Expression  string              `json:"expression"`
	Result      measure.Measurement `json:"result"`
	Millimeters string              `json:"millimeters"`
	Formatted   string              `json:"formatted,omitempty"`
	EntryID     string              `json:"entry_id,omitempty"`
}

// formatFlags holds the per-command overrides of the format section.
type formatFlags struct {
	style       string
	scale       int
	denominator int
	units       string
}

func addFormatFlags(cmd *cobra.Command, f *formatFlags) {
	cmd.Flags().StringVar(&f.style, "style", "", "rendering style: fraction or decimal")
	cmd.Flags().IntVar(&f.scale, "scale", 0, "fractional digits for the decimal style")
	cmd.Flags().IntVar(&f.denominator, "denominator", 0, "finest fraction for the fraction style")
	cmd.Flags().StringVar(&f.units, "units", "", "comma-separated units, largest first")
}

// formatter binds the format flags over the configuration and builds the
// renderer they select.
func (a *app) formatter(cmd *cobra.Command) (format.Formatter, error) {
	for key, name := range map[string]string{
		cfgKeyStyle:       "style",
		cfgKeyScale:       "scale",
		cfgKeyDenominator: "denominator",
		cfgKeyUnits:       "units",
	} {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, sysError(fmt.Errorf("bind flag %s: %w", name, err))
		}
	}
	cfg := a.formatConfig()
	a.log.Debug("formatter", "style", cfg.Style, "scale", cfg.Scale, "denominator", cfg.Denominator, "units", cfg.Units)

	f, err := format.FromConfig(cfg)
	if err != nil {
		return nil, classify(err)
	}
	return f, nil
}

// finish optionally saves r and writes it out.
func (a *app) finish(cmd *cobra.Command, operation string, args []string, save bool, r result, text string) error {
	if save {
		id, err := a.save(operation, args, r.Result, r.Formatted)
		if err != nil {
			return err
		}
		r.EntryID = id
	}
	return a.emit(cmd, r, text)
}

func newConvertCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "convert <measurement> <unit>",
		Short: "Convert a measurement to another unit",
		Example: `  yardstick convert 1.05m in
  yardstick convert "3 feet" yd`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMeasurement(args[0])
			if err != nil {
				return err
			}
			unit, err := units.Lookup(args[1])
			if err != nil {
				return classify(err)
			}
			out := measure.NewIn(m.Millimeters(), unit, units.Millimeter)
			r := result{
				Expression:  strings.Join(args, " "),
				Result:      out,
				Millimeters: out.Millimeters().String(),
			}
			return a.finish(cmd, types.OperationConvert, args, save, r, out.String())
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "record the result in the logbook")
	return cmd
}

func newFormatCmd(a *app) *cobra.Command {
	var save bool
	var ff formatFlags
	cmd := &cobra.Command{
		Use:   "format <measurement>",
		Short: "Render a measurement across several units",
		Example: `  yardstick format 89.25in
  yardstick format 1.05m --style decimal --scale 3 --units in`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMeasurement(args[0])
			if err != nil {
				return err
			}
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}
			text := f.Format(m)
			r := result{
				Expression:  args[0],
				Result:      m,
				Millimeters: m.Millimeters().String(),
				Formatted:   text,
			}
			return a.finish(cmd, types.OperationFormat, args, save, r, text)
		},
	}
	addFormatFlags(cmd, &ff)
	cmd.Flags().BoolVar(&save, "save", false, "record the result in the logbook")
	return cmd
}

func newCalcCmd(a *app) *cobra.Command {
	var save bool
	var ff formatFlags
	cmd := &cobra.Command{
		Use:   "calc <measurement> <operator> <measurement>",
		Short: "Add, subtract, multiply, or divide two measurements",
		Long: `Apply an operator to two measurements. The result takes the unit of the
first operand. Operators: + - x * / or the words plus, minus, times, divide.
Multiplication and division scale the first operand by the second's length
expressed in the first operand's unit.`,
		Example: `  yardstick calc 3ft + 4in
  yardstick calc 9cm / 30mm`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lhs, err := parseMeasurement(args[0])
			if err != nil {
				return err
			}
			op, err := measure.ParseOperator(args[1])
			if err != nil {
				return classify(err)
			}
			rhs, err := parseMeasurement(args[2])
			if err != nil {
				return err
			}
			out, err := op.Apply(lhs, rhs)
			if err != nil {
				return classify(err)
			}
			f, err := a.formatter(cmd)
			if err != nil {
				return err
			}
			r := result{
				Expression:  fmt.Sprintf("%s %s %s", lhs, op.Symbol(), rhs),
				Result:      out,
				Millimeters: out.Millimeters().String(),
				Formatted:   f.Format(out),
			}
			text := fmt.Sprintf("%s = %s (%s)", r.Expression, out, r.Formatted)
			return a.finish(cmd, types.OperationCalc, args, save, r, text)
		},
	}
	addFormatFlags(cmd, &ff)
	cmd.Flags().BoolVar(&save, "save", false, "record the result in the logbook")
	return cmd
}

// parsed is the JSON shape of the parse command.
type parsed struct {
	Length      string `json:"length"`
	Unit        string `json:"unit"`
	DisplayName string `json:"display_name"`
	Millimeters string `json:"millimeters"`
	EntryID     string `json:"entry_id,omitempty"`
}

func newParseCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "parse <measurement>",
		Short: "Show the length, unit, and exact millimeters of a measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMeasurement(args[0])
			if err != nil {
				return err
			}
			p := parsed{
				Length:      m.Length().String(),
				Unit:        m.Unit().Abbreviation(),
				DisplayName: m.Unit().DisplayName(),
				Millimeters: m.Millimeters().String(),
			}
			if save {
				if p.EntryID, err = a.save(types.OperationParse, args, m, ""); err != nil {
					return err
				}
			}
			text := fmt.Sprintf("length:      %s\nunit:        %s (%s)\nmillimeters: %s",
				p.Length, p.Unit, p.DisplayName, p.Millimeters)
			return a.emit(cmd, p, text)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "record the result in the logbook")
	return cmd
}

// unitRow is the JSON shape of one row of the units command.
type unitRow struct {
	Abbreviation       string `json:"abbreviation"`
	DisplayName        string `json:"display_name"`
	MillimetersPerUnit string `json:"millimeters_per_unit"`
}

func newUnitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the supported units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []unitRow
			var sb strings.Builder
			tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "UNIT\tNAME\tMILLIMETERS")
			for _, u := range units.All() {
				row := unitRow{u.Abbreviation(), u.DisplayName(), u.MillimetersPerUnit().String()}
				rows = append(rows, row)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Abbreviation, row.DisplayName, row.MillimetersPerUnit)
			}
			tw.Flush()
			return a.emit(cmd, rows, strings.TrimRight(sb.String(), "\n"))
		},
	}
}
