// Package main implements resumectl, a developer harness that drives the
// resume generation pipeline from a workstation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Resume generator developer harness",
	Long:          "resumectl drives the tailored resume pipeline: build prompts, generate resumes in-process or by invoking the deployed function, and render saved content to HTML.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
