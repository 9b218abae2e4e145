package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/succession-calculator/internal/calculation"
	"github.com/rpgo/succession-calculator/internal/config"
	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/internal/output"
)

var (
	inputFile  string
	paramsFile string
	format     string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "succession-cli",
		Short: "Deterministic French inheritance devolution and tax calculator",
	}
	root.AddCommand(newSimulateCommand())
	root.AddCommand(newExampleCommand())
	return root
}

func newSimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a succession simulation from an input file",
		RunE:  runSimulate,
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to the simulation input YAML file (required)")
	cmd.Flags().StringVarP(&paramsFile, "legal-params", "l", "", "path to a legal-parameters YAML file (defaults to the built-in 2025 table)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, csv, or all")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a minimal example simulation input as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			example := parser.CreateExampleInput()
			data, err := yaml.Marshal(example)
			if err != nil {
				return fmt.Errorf("failed to marshal example input: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()

	input, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return err
	}

	params := domain.DefaultLegalParameters2025()
	if paramsFile != "" {
		loaded, err := parser.LoadLegalParametersFromFile(paramsFile)
		if err != nil {
			return err
		}
		params = *loaded
	}

	result, err := calculation.Simulate(*input, params)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	return output.GenerateReport(result, format)
}
