package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-generator/internal/generation"
	"resume-generator/resume/prompt"
)

type promptOptions struct {
	candidateFile string
	jobFile       string
	version       string
}

func newPromptCmd() *cobra.Command {
	opts := &promptOptions{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the system instruction and prompt for the given inputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.candidateFile, "candidate", "c", "", "Path to candidate data JSON (default: built-in sample)")
	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "Path to job description text (default: built-in sample)")
	cmd.Flags().StringVar(&opts.version, "prompt-version", prompt.DefaultVersion, "Prompt template version")
	return cmd
}

func init() {
	rootCmd.AddCommand(newPromptCmd())
}

func runPrompt(cmd *cobra.Command, opts *promptOptions) error {
	out := cmd.OutOrStdout()
	candidate, job, err := loadInputs(cmd.ErrOrStderr(), opts.candidateFile, opts.jobFile)
	if err != nil {
		return err
	}
	input, err := generation.NewValidator().Validate(generation.Request{CandidateData: candidate, JobDescription: job})
	if err != nil {
		return err
	}
	builder, err := prompt.NewBuilder(opts.version)
	if err != nil {
		return err
	}

	p := builder.Build(input.Profile, input.JobDescription)
	fmt.Fprintf(out, "=== SYSTEM (%s) ===\n%s\n\n=== USER ===\n%s\n", builder.Version(), p.System, p.User)
	return nil
}
