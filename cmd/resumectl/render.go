package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-generator/resume/model"
	"resume-generator/resume/normalize"
	"resume-generator/resume/render"
)

type renderOptions struct {
	contentFile string
	name        string
	outFile     string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render saved resume content to HTML without calling the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.contentFile, "content", "", "Path to resume_content JSON or a saved success body (required)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Candidate name (required)")
	cmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "Path to write the HTML document (default: stdout)")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	raw, err := os.ReadFile(opts.contentFile)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	content, err := decodeSavedContent(raw)
	if err != nil {
		return err
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return err
	}
	doc, err := renderer.Render(content, opts.name)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if strings.TrimSpace(opts.outFile) == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
		return err
	}
	if err := os.WriteFile(opts.outFile, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "HTML resume saved to: %s\n", opts.outFile)
	return nil
}

// decodeSavedContent accepts resume_content as serialized in a response, or
// a whole success body carrying it.
func decodeSavedContent(raw []byte) (model.GeneratedContent, error) {
	var envelope struct {
		ResumeContent json.RawMessage `json:"resume_content"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.ResumeContent) > 0 {
		raw = envelope.ResumeContent
	}

	var freeform map[string]json.RawMessage
	if err := json.Unmarshal(raw, &freeform); err == nil && len(freeform) == 1 {
		if text, ok := freeform["content"]; ok {
			var content model.FreeformContent
			if err := json.Unmarshal(text, &content.Text); err != nil {
				return nil, fmt.Errorf("decode freeform content: %w", err)
			}
			return content, nil
		}
	}

	normalizer, err := normalize.New()
	if err != nil {
		return nil, err
	}
	return normalizer.Normalize(string(raw)), nil
}
