package rwerr

import (
	"fmt"
	"log/slog"
	"strings"
)

// Errors accumulates RewriteError values. A nil *Errors is empty and ready to use
type Errors struct {
	errs []RewriteError
}

func (r *Errors) With(err ...RewriteError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []RewriteError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Err returns r as an error, or nil when it holds no errors
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	return r
}

func (r *Errors) Error() string {
	msgs := make([]string, 0, len(r.errs))
	for _, e := range r.errs {
		msgs = append(msgs, FormatWithCode(e))
	}
	return strings.Join(msgs, "\n")
}

// Unwrap allows errors.Is and errors.As to inspect every accumulated error
func (r *Errors) Unwrap() []error {
	errs := make([]error, len(r.errs))
	for i, e := range r.errs {
		errs[i] = e
	}
	return errs
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
