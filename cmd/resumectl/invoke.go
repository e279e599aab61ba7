package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-generator/internal/generation"
)

// InvokeAPI is the subset of the Lambda client used by the invoke command.
type InvokeAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// newInvokeClient builds the Lambda client; tests replace it.
var newInvokeClient = func(ctx context.Context, region, profile string) (InvokeAPI, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return lambda.NewFromConfig(cfg), nil
}

type invokeOptions struct {
	functionName  string
	region        string
	profile       string
	envFile       string
	candidateFile string
	jobFile       string
	saveFiles     bool
	outDir        string
}

func newInvokeCmd() *cobra.Command {
	opts := &invokeOptions{}
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Invoke the deployed generator function synchronously",
		Long:  "Sends the inputs to a deployed Lambda function with a RequestResponse invocation and reports the envelope it returns.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInvoke(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.functionName, "function-name", "", "Lambda function name or ARN (required)")
	cmd.Flags().StringVar(&opts.region, "region", "us-east-1", "AWS region of the function")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "AWS shared config profile")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file loaded before the AWS config")
	cmd.Flags().StringVarP(&opts.candidateFile, "candidate", "c", "", "Path to candidate data JSON (default: built-in sample)")
	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "Path to job description text (default: built-in sample)")
	cmd.Flags().BoolVar(&opts.saveFiles, "save-files", false, "Save the HTML resume locally")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "Directory for saved files")
	_ = cmd.MarkFlagRequired("function-name")
	return cmd
}

func init() {
	rootCmd.AddCommand(newInvokeCmd())
}

func runInvoke(cmd *cobra.Command, opts *invokeOptions) error {
	out := cmd.OutOrStdout()
	loadEnvFile(out, opts.envFile)

	candidate, job, err := loadInputs(out, opts.candidateFile, opts.jobFile)
	if err != nil {
		return err
	}
	req := generation.Request{CandidateData: candidate, JobDescription: job}
	if input, err := generation.NewValidator().Validate(req); err == nil {
		printInputSummary(out, input)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newInvokeClient(ctx, opts.region, opts.profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Invoking Lambda function: %s\n", opts.functionName)
	fmt.Fprintf(out, "Region: %s\n", opts.region)
	fmt.Fprintln(out, strings.Repeat("-", 50))

	resp, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(opts.functionName),
		InvocationType: lambdatypes.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("invoke %s: %w", opts.functionName, err)
	}
	fmt.Fprintf(out, "Lambda Status Code: %d\n", resp.StatusCode)
	if resp.FunctionError != nil {
		fmt.Fprintln(out, "FAILED!")
		return fmt.Errorf("function error %s: %s", aws.ToString(resp.FunctionError), strings.TrimSpace(string(resp.Payload)))
	}

	var envelope generation.Response
	if err := json.Unmarshal(resp.Payload, &envelope); err != nil {
		return fmt.Errorf("decode function response: %w", err)
	}
	fmt.Fprintf(out, "Response Status Code: %d\n", envelope.StatusCode)
	fmt.Fprintln(out, strings.Repeat("=", 50))

	if envelope.StatusCode != 200 {
		var failure generation.ErrorBody
		_ = json.Unmarshal([]byte(envelope.Body), &failure)
		fmt.Fprintln(out, "FAILED!")
		return fmt.Errorf("generation failed with status %d: %s", envelope.StatusCode, failure.Error)
	}
	return reportInvokeSuccess(out, envelope.Body, opts)
}

func reportInvokeSuccess(w io.Writer, body string, opts *invokeOptions) error {
	var result struct {
		Message    string  `json:"message"`
		HTMLResume string  `json:"html_resume"`
		S3URL      *string `json:"s3_url"`
	}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return fmt.Errorf("decode success body: %w", err)
	}

	fmt.Fprintln(w, "SUCCESS!")
	fmt.Fprintf(w, "Message: %s\n", result.Message)
	if result.S3URL != nil {
		fmt.Fprintf(w, "S3 URL: %s\n", *result.S3URL)
	}
	if content, err := decodeSavedContent([]byte(body)); err == nil {
		printContentPreview(w, content)
	}

	if opts.saveFiles && result.HTMLResume != "" {
		path, err := saveHTML(opts.outDir, result.HTMLResume, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "HTML resume saved to: %s\n", path)
	}
	return nil
}

// loadEnvFile loads an explicit .env file, or ./.env when none is given.
func loadEnvFile(w io.Writer, path string) {
	if strings.TrimSpace(path) == "" {
		if err := godotenv.Load(); err == nil {
			fmt.Fprintln(w, "Loaded environment variables from: .env")
		}
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(w, "Warning: could not load env file %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(w, "Loaded environment variables from: %s\n", path)
}
