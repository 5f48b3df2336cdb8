package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/builtfast/vector-cli/src/client/api"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind        string      `json:"kind"`
	Message     string      `json:"message"`
	Status      int         `json:"status,omitempty"`
	Errors      fieldErrors `json:"errors,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// fieldErrors marshals as an object whose keys keep the server's order.
type fieldErrors []api.FieldError

func (f fieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fe.Field)
		if err != nil {
			return nil, err
		}
		msgs := fe.Messages
		if msgs == nil {
			msgs = []string{}
		}
		v, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Error reports err on the error stream in the renderer's mode.
func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}
	detail := errorDetail{
		Kind:    api.KindOf(err).String(),
		Message: err.Error(),
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		detail.Status = apiErr.Status
		detail.Errors = apiErr.Fields
	}
	var unknown *api.UnknownCommandError
	if errors.As(err, &unknown) {
		detail.Suggestions = unknown.Suggestions
	}

	if r.Mode == JSON {
		data, merr := json.MarshalIndent(errorBody{Error: detail}, "", "  ")
		if merr != nil {
			fmt.Fprintf(r.Err, "Error: %s\n", detail.Message)
			return
		}
		fmt.Fprintf(r.Err, "%s\n", data)
		return
	}

	fmt.Fprintf(r.Err, "Error: %s\n", detail.Message)
	for _, fe := range detail.Errors {
		for _, msg := range fe.Messages {
			fmt.Fprintf(r.Err, "  %s: %s\n", fe.Field, msg)
		}
	}
	if len(detail.Suggestions) > 0 {
		fmt.Fprintln(r.Err, "\nDid you mean this?")
		for _, s := range detail.Suggestions {
			fmt.Fprintf(r.Err, "\t%s\n", s)
		}
	}
}
