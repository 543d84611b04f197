// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/benefits-navigator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFacts outputs a human-readable summary of the extracted Facts record.
func (p *Printer) PrintFacts(facts *types.Facts) {
	if facts == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Household size:  %d\n", facts.HouseholdSize))
	if total, ok := facts.MonthlyIncome(); ok {
		sb.WriteString(fmt.Sprintf("Monthly income:  $%d\n", total))
	} else {
		sb.WriteString("Monthly income:  unknown\n")
	}

	if len(facts.IncomeSources) > 0 {
		sb.WriteString("\nIncome sources:\n")
		count := min(len(facts.IncomeSources), maxItemsToShow)
		for i := 0; i < count; i++ {
			src := facts.IncomeSources[i]
			sb.WriteString(fmt.Sprintf("  • %s: $%.0f/%s -> $%d/mo", src.Type, src.RawAmount, src.Frequency, src.MonthlyAmount))
			if src.IsVariable {
				sb.WriteString(" (variable)")
			}
			sb.WriteString("\n")
		}
		if len(facts.IncomeSources) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(facts.IncomeSources)-maxItemsToShow))
		}
	}

	var flags []string
	if facts.Pregnant {
		flags = append(flags, "pregnant")
	}
	if facts.Breastfeeding {
		flags = append(flags, "breastfeeding")
	}
	if facts.ElderlyInHousehold {
		flags = append(flags, "elderly")
	}
	if facts.DisabledInHousehold {
		flags = append(flags, "disabled")
	}
	if facts.OnMedicare {
		flags = append(flags, "on Medicare")
	}
	if facts.ChildrenUnder5 > 0 {
		flags = append(flags, fmt.Sprintf("%d under 5", facts.ChildrenUnder5))
	}
	if facts.ChildrenSchoolAge > 0 {
		flags = append(flags, fmt.Sprintf("%d school-age", facts.ChildrenSchoolAge))
	}
	if len(flags) > 0 {
		sb.WriteString(fmt.Sprintf("\nHousehold: %s\n", strings.Join(flags, ", ")))
	}

	if facts.Rent != nil {
		sb.WriteString(fmt.Sprintf("Rent: $%.0f", *facts.Rent))
		if facts.UtilitiesIncluded {
			sb.WriteString(" (utilities included)")
		} else if facts.UtilitiesSeparate {
			sb.WriteString(" (utilities separate)")
		}
		sb.WriteString("\n")
	}
	if facts.HousingInstability != types.InstabilityNone {
		sb.WriteString(fmt.Sprintf("Housing instability: %s\n", facts.HousingInstability))
	}

	if len(facts.ContradictionsDetected) > 0 {
		sb.WriteString("\nContradictions:\n")
		for _, c := range facts.ContradictionsDetected {
			sb.WriteString(fmt.Sprintf("  ! [%s] %s\n", c.Severity, c.Type))
		}
	}

	sb.WriteString(fmt.Sprintf("\nData quality: %.2f", facts.DataQualityScore))

	p.printBox("EXTRACTED FACTS", strings.TrimSuffix(sb.String(), "\n"))
}

// statusMarks maps each determination status to its list marker.
var statusMarks = map[types.Status]string{
	types.StatusLikelyEligible:      "[Y]",
	types.StatusPotentiallyEligible: "[?]",
	types.StatusNotEligible:         "[N]",
	types.StatusNotApplicable:       "[-]",
	types.StatusInsufficientInfo:    "[!]",
}

// PrintProgramResults outputs one line block per program determination.
func (p *Printer) PrintProgramResults(programs []types.ProgramResult) {
	if len(programs) == 0 {
		return
	}

	var sb strings.Builder
	for i, prog := range programs {
		mark, ok := statusMarks[prog.Status]
		if !ok {
			mark = "[ ]"
		}
		sb.WriteString(fmt.Sprintf("%s %s: %s\n", mark, prog.Program, prog.Status))
		if prog.Tier != "" {
			sb.WriteString(fmt.Sprintf("    Tier: %s\n", prog.Tier))
		}
		if prog.EstimatedBenefit != "" {
			sb.WriteString(fmt.Sprintf("    Benefit: %s\n", prog.EstimatedBenefit))
		}
		if prog.Expedited {
			sb.WriteString("    Expedited: yes\n")
		}
		if i < len(programs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PROGRAM DETERMINATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the aggregated multi-program summary.
func (p *Printer) PrintSummary(result *types.MultiProgramResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	writeBucket := func(label string, names []string) {
		if len(names) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(names, ", ")))
	}

	writeBucket("Likely eligible", result.Summary.LikelyEligible)
	writeBucket("Potentially eligible", result.Summary.PotentiallyEligible)
	writeBucket("Not eligible", result.Summary.NotEligible)
	writeBucket("Not applicable", result.Summary.NotApplicable)
	writeBucket("Insufficient info", result.Summary.InsufficientInfo)

	if result.PriorityAction != nil {
		sb.WriteString(fmt.Sprintf("\nPriority action: %s\n", result.PriorityAction.Program))
		if result.PriorityAction.Expedited {
			sb.WriteString("  EXPEDITED\n")
		}
	}
	sb.WriteString(fmt.Sprintf("\nEstimated monthly value: %s", result.TotalEstimatedMonthlyValue))

	p.printBox("ELIGIBILITY SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
