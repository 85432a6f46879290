package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"rate": FormatRate,
	"upper": func(ceiling *decimal.Decimal) string {
		if ceiling == nil {
			return "and up"
		}
		return FormatCurrency(*ceiling)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	data := struct {
		*EstimateReport
		AllAssumptions []string
	}{report, assumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
