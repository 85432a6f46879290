package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"State income tax: flat approximation of each state's rate applied to federal taxable income",
	"Credits are nonrefundable and offset the combined tax before payments",
	"Negative amounts are treated as zero",
	"Quarterly payment is one quarter of total tax and ignores payments already made",
	"Potential deductions are a planning range only and do not affect the estimate",
}
