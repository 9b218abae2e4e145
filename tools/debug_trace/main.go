package main

import (
	"fmt"
	"os"

	calc "github.com/rpgo/succession-calculator/internal/calculation"
	"github.com/rpgo/succession-calculator/internal/config"
	"github.com/rpgo/succession-calculator/internal/domain"
)

// printLogger dumps operational breakdowns straight to stdout; there is no
// structured-logging dependency in the stack, so debug tooling gets a plain
// fmt-backed implementation of calc.Logger.
type printLogger struct{}

func (printLogger) Debugf(format string, args ...any) { fmt.Printf("DEBUG: "+format+"\n", args...) }
func (printLogger) Infof(format string, args ...any)  { fmt.Printf("INFO:  "+format+"\n", args...) }
func (printLogger) Warnf(format string, args ...any)  { fmt.Printf("WARN:  "+format+"\n", args...) }
func (printLogger) Errorf(format string, args ...any) { fmt.Printf("ERROR: "+format+"\n", args...) }

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_trace <input-file> [legal-params-file]")
		return
	}
	inputFile := os.Args[1]

	p := config.NewInputParser()
	input, err := p.LoadFromFile(inputFile)
	if err != nil {
		panic(err)
	}

	params := domain.DefaultLegalParameters2025()
	if len(os.Args) >= 3 {
		loaded, err := p.LoadLegalParametersFromFile(os.Args[2])
		if err != nil {
			panic(err)
		}
		params = *loaded
	}

	result, err := calc.SimulateWithLogger(*input, params, printLogger{})
	if err != nil {
		fmt.Println("simulation failed:", err)
		return
	}

	fmt.Println("=== Calculation Steps ===")
	for _, step := range result.CalculationSteps {
		fmt.Printf("%3d. %-30s %s\n", step.StepNumber, step.StepName, step.ResultSummary)
	}

	fmt.Println("\n=== Warnings ===")
	if len(result.Warnings) == 0 {
		fmt.Println("(none)")
	}
	for _, w := range result.Warnings {
		fmt.Printf("[%s/%s/%s] %s\n", w.Severity, w.Audience, w.Category, w.Message)
		if w.Details != "" {
			fmt.Printf("    %s\n", w.Details)
		}
		for _, k := range w.ExplanationKeys {
			fmt.Printf("    key: %s\n", k)
		}
	}

	fmt.Println("\n=== Global Metrics ===")
	fmt.Printf("Total estate:      %s\n", result.GlobalMetrics.TotalEstateValue)
	fmt.Printf("Legal reserve:     %s\n", result.GlobalMetrics.LegalReserveValue)
	fmt.Printf("Disposable quota:  %s\n", result.GlobalMetrics.DisposableQuotaValue)
	fmt.Printf("Total tax:         %s\n", result.GlobalMetrics.TotalTaxAmount)
}
