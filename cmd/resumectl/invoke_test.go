package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

type fakeInvoker struct {
	output *lambda.InvokeOutput
	err    error
	input  *lambda.InvokeInput
	calls  int
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.calls++
	f.input = params
	return f.output, f.err
}

func useInvoker(t *testing.T, fake *fakeInvoker) *struct{ region, profile string } {
	t.Helper()
	seen := &struct{ region, profile string }{}
	old := newInvokeClient
	newInvokeClient = func(ctx context.Context, region, profile string) (InvokeAPI, error) {
		seen.region = region
		seen.profile = profile
		return fake, nil
	}
	t.Cleanup(func() { newInvokeClient = old })
	return seen
}

func envelopePayload(t *testing.T, status int, body any) []byte {
	t.Helper()
	rawBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	payload, err := json.Marshal(map[string]any{"statusCode": status, "body": string(rawBody)})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return payload
}

func TestInvokeCommandSavesHTML(t *testing.T) {
	fake := &fakeInvoker{output: &lambda.InvokeOutput{
		StatusCode: 200,
		Payload: envelopePayload(t, 200, map[string]any{
			"message":        "Resume generated successfully",
			"resume_content": map[string]any{"summary": "Tailored summary", "skills": []string{"Python", "AWS"}},
			"html_resume":    "<html><body>resume</body></html>",
			"s3_url":         "https://resumes.s3.amazonaws.com/resumes/John_Doe_20240101_000000.html",
		}),
	}}
	seen := useInvoker(t, fake)

	dir := t.TempDir()
	out, err := execute(t, newInvokeCmd(), "--function-name", "resume-generator", "--region", "eu-west-1", "--profile", "dev", "--save-files", "--out-dir", dir)
	if err != nil {
		t.Fatalf("invoke: %v\n%s", err, out)
	}

	if fake.calls != 1 {
		t.Fatalf("expected one invocation, got %d", fake.calls)
	}
	if seen.region != "eu-west-1" || seen.profile != "dev" {
		t.Fatalf("unexpected client settings %+v", *seen)
	}
	if aws.ToString(fake.input.FunctionName) != "resume-generator" {
		t.Fatalf("unexpected function name %q", aws.ToString(fake.input.FunctionName))
	}
	if fake.input.InvocationType != lambdatypes.InvocationTypeRequestResponse {
		t.Fatalf("expected RequestResponse invocation, got %q", fake.input.InvocationType)
	}
	var sent struct {
		CandidateData struct {
			Name string `json:"name"`
		} `json:"candidate_data"`
		JobDescription string `json:"job_description"`
	}
	if err := json.Unmarshal(fake.input.Payload, &sent); err != nil {
		t.Fatalf("decode sent payload: %v", err)
	}
	if sent.CandidateData.Name != "John Doe" || !strings.Contains(sent.JobDescription, "Cloud Platform Team") {
		t.Fatalf("unexpected payload %s", fake.input.Payload)
	}

	for _, want := range []string{"Invoking Lambda function: resume-generator", "Response Status Code: 200", "SUCCESS!", "S3 URL: https://", "Summary: Tailored summary", "HTML resume saved to:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "resume_*.html"))
	if len(matches) != 1 {
		t.Fatalf("expected one saved file, got %v", matches)
	}
	saved, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(saved) != "<html><body>resume</body></html>" {
		t.Fatalf("unexpected saved html %q", saved)
	}
}

func TestInvokeCommandReportsEnvelopeError(t *testing.T) {
	fake := &fakeInvoker{output: &lambda.InvokeOutput{
		StatusCode: 200,
		Payload:    envelopePayload(t, 500, map[string]any{"error": "OpenAI API key not found in environment variables"}),
	}}
	useInvoker(t, fake)

	out, err := execute(t, newInvokeCmd(), "--function-name", "resume-generator")
	if err == nil || !strings.Contains(err.Error(), "status 500") || !strings.Contains(err.Error(), "OpenAI API key not found") {
		t.Fatalf("expected envelope error, got %v", err)
	}
	if !strings.Contains(out, "FAILED!") {
		t.Fatalf("expected failure banner in output:\n%s", out)
	}
}

func TestInvokeCommandReportsFunctionError(t *testing.T) {
	fake := &fakeInvoker{output: &lambda.InvokeOutput{
		StatusCode:    200,
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"Runtime exited","errorType":"Runtime.ExitError"}`),
	}}
	useInvoker(t, fake)

	_, err := execute(t, newInvokeCmd(), "--function-name", "resume-generator")
	if err == nil || !strings.Contains(err.Error(), "Unhandled") || !strings.Contains(err.Error(), "Runtime exited") {
		t.Fatalf("expected function error, got %v", err)
	}
}

func TestInvokeCommandReportsInvokeFailure(t *testing.T) {
	fake := &fakeInvoker{err: errors.New("AccessDeniedException")}
	useInvoker(t, fake)

	_, err := execute(t, newInvokeCmd(), "--function-name", "resume-generator")
	if err == nil || !strings.Contains(err.Error(), "AccessDeniedException") {
		t.Fatalf("expected invoke error, got %v", err)
	}
}

func TestInvokeCommandRequiresFunctionName(t *testing.T) {
	fake := &fakeInvoker{}
	useInvoker(t, fake)

	if _, err := execute(t, newInvokeCmd()); err == nil {
		t.Fatalf("expected missing flag error")
	}
	if fake.calls != 0 {
		t.Fatalf("expected no invocation, got %d", fake.calls)
	}
}

func TestInvokeCommandLoadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "invoke.env")
	if err := os.WriteFile(envFile, []byte("RESUMECTL_INVOKE_MARKER=loaded\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("RESUMECTL_INVOKE_MARKER", "")
	os.Unsetenv("RESUMECTL_INVOKE_MARKER")

	fake := &fakeInvoker{output: &lambda.InvokeOutput{
		StatusCode: 200,
		Payload:    envelopePayload(t, 200, map[string]any{"message": "ok", "resume_content": map[string]any{"content": "text"}, "html_resume": "<p>x</p>", "s3_url": nil}),
	}}
	useInvoker(t, fake)

	out, err := execute(t, newInvokeCmd(), "--function-name", "resume-generator", "--env-file", envFile)
	if err != nil {
		t.Fatalf("invoke: %v\n%s", err, out)
	}
	if got := os.Getenv("RESUMECTL_INVOKE_MARKER"); got != "loaded" {
		t.Fatalf("expected env file to be loaded, got %q", got)
	}
	if strings.Contains(out, "S3 URL:") {
		t.Fatalf("no locator expected when s3_url is null:\n%s", out)
	}
}
