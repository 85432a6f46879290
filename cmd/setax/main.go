package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "setax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "setax",
	Short: "Self-employment tax estimator CLI",
	Long: `Estimate federal income tax, self-employment tax and state tax for a
sole proprietor, compare what-if scenarios, solve for break-even amounts,
and work through the canceled-debt and underpayment penalty worksheets.`,
	SilenceUsage: true,
}

// environment is what every command needs from the persistent flags
type environment struct {
	Constants domain.TaxYearConstants
	States    domain.StateRateTable
	Parser    *config.InputParser
	Calc      *calculation.Calculator
}

// loadEnvironment resolves constants and the state table from the persistent
// flags. fileYear is the tax_year of a loaded scenario file, or 0.
func loadEnvironment(cmd *cobra.Command, fileYear int) (*environment, error) {
	reg, err := config.LoadDefaultConstants()
	if err != nil {
		return nil, err
	}

	year := config.DefaultTaxYear
	if fileYear != 0 {
		year = fileYear
	}
	if cmd.Flags().Changed("year") {
		year, _ = cmd.Flags().GetInt("year")
	}

	if constantsFile, _ := cmd.Flags().GetString("constants"); constantsFile != "" {
		c, err := reg.LoadFile(constantsFile)
		if err != nil {
			return nil, err
		}
		if !cmd.Flags().Changed("year") && fileYear == 0 {
			year = c.Year
		}
	}

	constants, err := reg.Get(year)
	if err != nil {
		return nil, err
	}

	var states domain.StateRateTable
	if statesFile, _ := cmd.Flags().GetString("states"); statesFile != "" {
		states, err = config.LoadStatesFile(statesFile)
	} else {
		states, err = config.LoadDefaultStates()
	}
	if err != nil {
		return nil, err
	}

	calc := calculation.NewCalculator(constants, states)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		log.SetOutput(cmd.ErrOrStderr())
		calc.SetLogger(simpleCLILogger{})
	}

	return &environment{
		Constants: constants,
		States:    states,
		Parser:    config.NewInputParser(states),
		Calc:      calc,
	}, nil
}

// loadScenarioSet reads a scenario file, picks constants for its tax_year
// and then validates state codes against the loaded state table.
func loadScenarioSet(cmd *cobra.Command, path string) (*domain.ScenarioSet, *environment, error) {
	set, err := config.NewInputParser(nil).LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	env, err := loadEnvironment(cmd, set.TaxYear)
	if err != nil {
		return nil, nil, err
	}
	if err := env.Parser.ValidateScenarioSet(set); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	set.TaxYear = env.Constants.Year
	return set, env, nil
}

func writeOutput(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

func init() {
	rootCmd.PersistentFlags().Int("year", config.DefaultTaxYear, "Tax year whose constants to use")
	rootCmd.PersistentFlags().String("constants", "", "Path to a tax constants YAML file (adds or replaces that year)")
	rootCmd.PersistentFlags().String("states", "", "Path to a state rate table YAML file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(debtCmd)
	rootCmd.AddCommand(penaltyCmd)
	rootCmd.AddCommand(safeHarborCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
