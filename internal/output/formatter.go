package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formatter renders an estimate report in one output format
type Formatter interface {
	Name() string
	Format(report *EstimateReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *EstimateReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *EstimateReport) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"console-lite": ConsoleLiteFormatter{},
	"json":         JSONFormatter{},
	"yaml":         YAMLFormatter{},
	"csv":          CSVSummarizer{},
	"detailed-csv": BracketCSVFormatter{},
	"html":         HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"verbose": "console",
	"summary": "console-lite",
	"yml":     "yaml",
	"htm":     "html",
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// GetFormatterByName resolves a formatter by name or alias. It returns nil
// when nothing matches.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// WriteFormatted renders report with f and writes it to a timestamped file
// in the current directory, returning the file name.
func WriteFormatted(f Formatter, report *EstimateReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), strings.TrimPrefix(ext, "."))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// ExtensionFor returns the file extension conventionally used by a formatter
func ExtensionFor(f Formatter) string {
	switch f.Name() {
	case "json", "yaml", "csv", "html":
		return f.Name()
	case "detailed-csv":
		return "csv"
	default:
		return "txt"
	}
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate such as 0.22 as a percentage
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}
