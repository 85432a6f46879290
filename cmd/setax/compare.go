package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/setax/internal/compare"
	"github.com/rgehrsitz/setax/internal/output"
	"github.com/rgehrsitz/setax/internal/transform"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare tax scenarios against a base scenario",
	Long: `Compare a base scenario against built-in templates, ad hoc transforms,
or other scenarios in the same file.

Examples:
  ./setax compare scenarios.yaml --base Baseline --with max_ira,file_jointly
  ./setax compare scenarios.yaml --base Baseline --transform move_state:state=TX --transform contribute_ira:amount=3000
  ./setax compare scenarios.yaml --base Baseline --scenarios Family,Remote --format csv
  ./setax compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			env, err := loadEnvironment(cmd, 0)
			if err != nil {
				return err
			}
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates(env.Constants)))
			return nil
		}
		if list, _ := cmd.Flags().GetBool("list-transforms"); list {
			fmt.Fprintln(out, "Available Transforms (name:key=value,...):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
		}

		set, env, err := loadScenarioSet(cmd, args[0])
		if err != nil {
			return err
		}

		baseScenarioName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		specs, _ := cmd.Flags().GetStringArray("transform")
		scenarioNames, _ := cmd.Flags().GetStringSlice("scenarios")
		outputFormat, _ := cmd.Flags().GetString("format")

		if baseScenarioName == "" {
			baseScenarioName = set.Scenarios[0].Name
		}

		engine := compare.NewCompareEngine(env.Calc)
		ctx := context.Background()

		var comparisonSet *compare.ComparisonSet
		switch {
		case templatesStr != "":
			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 {
				return fmt.Errorf("no valid templates specified in --with flag")
			}
			comparisonSet, err = engine.Compare(ctx, set, compare.CompareOptions{
				BaseScenarioName: baseScenarioName,
				Templates:        templateNames,
			})
		case len(specs) > 0:
			comparisonSet, err = engine.CompareTransforms(ctx, set, baseScenarioName, specs)
		default:
			if len(scenarioNames) == 0 {
				for _, s := range set.Scenarios {
					if s.Name != baseScenarioName {
						scenarioNames = append(scenarioNames, s.Name)
					}
				}
			}
			if len(scenarioNames) == 0 {
				return fmt.Errorf("nothing to compare: use --with, --transform, or a file with more than one scenario")
			}
			comparisonSet, err = engine.CompareScenarios(ctx, set, baseScenarioName, scenarioNames)
		}
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		comparisonSet.TaxYear = env.Constants.Year
		comparisonSet.ConfigPath = args[0]

		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			result, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, result)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			result, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(out, result)

		case "compact":
			formatter := &compare.TableFormatter{}
			fmt.Fprintln(out, formatter.FormatCompact(comparisonSet))

		case "table", "":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(out, formatter.Format(comparisonSet))

		default:
			// Any document formatter renders every compared scenario in full
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json, %s)",
					outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			data, err := f.Format(comparisonSet.ToEstimateReport())
			if err != nil {
				return err
			}
			return writeOutput(out, data)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", "", "Base scenario name to compare against (default: first scenario)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad hoc transform spec name:key=value (repeatable)")
	compareCmd.Flags().StringSlice("scenarios", nil, "Scenario names to compare (default: all others in the file)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json, or a report format)")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	compareCmd.Flags().Bool("list-transforms", false, "List all available transforms")
}
