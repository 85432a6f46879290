package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "setax-tui [scenario-file]",
	Short: "Interactive self-employment tax estimator",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioPath := ""
		if len(args) == 1 {
			scenarioPath = args[0]
			if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
				return fmt.Errorf("scenario file not found: %s", scenarioPath)
			}
		}

		reg, err := config.LoadDefaultConstants()
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetInt("year")
		constants, err := reg.Get(year)
		if err != nil {
			return err
		}

		states, err := config.LoadDefaultStates()
		if statesFile, _ := cmd.Flags().GetString("states"); statesFile != "" {
			states, err = config.LoadStatesFile(statesFile)
		}
		if err != nil {
			return err
		}

		model := tui.NewModel(
			calculation.NewCalculator(constants, states),
			config.NewInputParser(states),
			scenarioPath,
		)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),       // Use alternate screen buffer
			tea.WithMouseCellMotion(), // Enable mouse support
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().Int("year", config.DefaultTaxYear, "Tax year whose constants to use")
	rootCmd.Flags().String("states", "", "Path to a state rate table YAML file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
