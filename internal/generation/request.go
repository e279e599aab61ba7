package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"resume-generator/resume/model"
)

// Request is the inbound generation request.
type Request struct {
	CandidateData  json.RawMessage `json:"candidate_data"`
	JobDescription string          `json:"job_description"`
}

// Input is a validated request.
type Input struct {
	Profile        model.CandidateProfile
	JobDescription model.JobDescription
}

// DecodeRequest parses a raw request payload.
func DecodeRequest(payload []byte) (Request, error) {
	var req Request
	if len(bytes.TrimSpace(payload)) == 0 {
		return req, &ValidationError{Message: MsgMissingInput}
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return Request{}, invalid(describeJSONError(err))
	}
	return req, nil
}

// Validator checks inbound requests.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a Validator.
func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{validate: v}
}

// Validate checks req and decodes its candidate profile.
func (v *Validator) Validate(req Request) (Input, error) {
	if isEmptyJSON(req.CandidateData) || strings.TrimSpace(req.JobDescription) == "" {
		return Input{}, &ValidationError{Message: MsgMissingInput}
	}

	var profile model.CandidateProfile
	if err := json.Unmarshal(req.CandidateData, &profile); err != nil {
		return Input{}, invalid("candidate_data: " + describeJSONError(err))
	}
	if err := v.validate.Struct(profile); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Name" {
			return Input{}, &ValidationError{Message: MsgNameRequired}
		}
		return Input{}, invalid(err.Error())
	}

	return Input{
		Profile:        profile,
		JobDescription: model.JobDescription(req.JobDescription),
	}, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

func describeJSONError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type.String())
		}
		return "unexpected JSON " + typeErr.Value
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	default:
		return err.Error()
	}
}
