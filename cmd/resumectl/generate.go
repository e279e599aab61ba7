package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"resume-generator/internal/bootstrap"
	"resume-generator/internal/generation"
	"resume-generator/internal/llm"
	"resume-generator/internal/shared/config"
	"resume-generator/resume/model"
)

// llmOverride replaces the configured model client; tests set it.
var llmOverride llm.Client

type generateOptions struct {
	candidateFile string
	jobFile       string
	saveFiles     bool
	outDir        string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the full generation pipeline in-process",
		Long:  "Validates the inputs, calls the configured model, renders the HTML resume and stores it when storage is configured.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.candidateFile, "candidate", "c", "", "Path to candidate data JSON (default: built-in sample)")
	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "Path to job description text (default: built-in sample)")
	cmd.Flags().BoolVar(&opts.saveFiles, "save-files", false, "Save the HTML resume locally")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "Directory for saved files")
	return cmd
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	out := cmd.OutOrStdout()
	candidate, job, err := loadInputs(out, opts.candidateFile, opts.jobFile)
	if err != nil {
		return err
	}

	app, err := bootstrap.BuildWith(config.Load(), bootstrap.Options{LLM: llmOverride})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	req := generation.Request{CandidateData: candidate, JobDescription: job}
	if input, err := app.GenerationService.Validator.Validate(req); err == nil {
		printInputSummary(out, input)
	}

	result, err := app.GenerationService.Run(cmd.Context(), req)
	if err != nil {
		fmt.Fprintln(out, "FAILED!")
		return err
	}

	fmt.Fprintln(out, "SUCCESS!")
	fmt.Fprintf(out, "Message: %s\n", result.Message)
	if result.S3URL != nil {
		fmt.Fprintf(out, "S3 URL: %s\n", *result.S3URL)
	}
	printContentPreview(out, result.ResumeContent)

	if opts.saveFiles {
		path, err := saveHTML(opts.outDir, result.HTMLResume, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "HTML resume saved to: %s\n", path)
	}
	return nil
}

func printInputSummary(w io.Writer, input generation.Input) {
	p := input.Profile
	fmt.Fprintf(w, "\nCandidate Name: %s\n", p.Name)
	fmt.Fprintf(w, "Skills: %s\n", strings.Join(p.Skills, ", "))
	fmt.Fprintf(w, "Experience Count: %d\n", len(p.Experience))
	fmt.Fprintf(w, "Education Count: %d\n", len(p.Education))
	fmt.Fprintf(w, "Certifications Count: %d\n", len(p.Certifications))
	fmt.Fprintf(w, "\nJob Description Preview: %s\n", preview(string(input.JobDescription), 200))
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

func printContentPreview(w io.Writer, content model.GeneratedContent) {
	fmt.Fprintln(w, "\nResume Content Preview:")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	switch c := content.(type) {
	case model.StructuredContent:
		if c.Summary != "" {
			fmt.Fprintf(w, "Summary: %s\n", preview(c.Summary, 200))
		}
		if len(c.Skills) > 0 {
			skills := c.Skills
			if len(skills) > 5 {
				skills = skills[:5]
			}
			fmt.Fprintf(w, "Skills: %s\n", strings.Join(skills, ", "))
		}
	case model.FreeformContent:
		fmt.Fprintf(w, "Content: %s\n", preview(c.Text, 200))
	}
}

func saveHTML(dir, doc string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	path := filepath.Join(dir, "resume_"+now.Format("20060102_150405")+".html")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write html: %w", err)
	}
	return path, nil
}
