package reports

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zeptools/informes/nullable"
)

// Request is one report run. Title overrides the template title when set.
type Request[R any] struct {
	Title       string
	FilterLabel string
	UserName    string
	Records     []R
}

// Decode reads a JSON body of the form
//
//	{"records": [...], "filterLabel": "...", "userName": "..."}
//
// The older per-kind keys (e.g. "expedientes") are accepted in place of
// "records". Whatever could be read is returned alongside an *InputError.
func (t *Template[R]) Decode(body []byte) (Request[R], error) {
	var req Request[R]
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req, &InputError{Kind: t.Kind, Err: err}
	}

	var errs []error
	text := func(dst *string, keys ...string) {
		for _, k := range keys {
			raw, ok := fields[k]
			if k == "" || !ok {
				continue
			}
			var s nullable.String
			if err := json.Unmarshal(raw, &s); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", k, err))
				return
			}
			*dst = s.ForceValue()
			return
		}
	}
	text(&req.Title, "title")
	text(&req.FilterLabel, "filterLabel", t.LegacyFilterKey)
	text(&req.UserName, "userName")

	key := "records"
	raw, ok := fields[key]
	if !ok && t.LegacyKey != "" {
		key = t.LegacyKey
		raw, ok = fields[key]
	}
	if !ok {
		errs = append(errs, errors.New("no records in body"))
	} else if err := json.Unmarshal(raw, &req.Records); err != nil {
		req.Records = nil
		errs = append(errs, fmt.Errorf("%s: %w", key, err))
	}

	if len(errs) > 0 {
		return req, &InputError{Kind: t.Kind, Err: errors.Join(errs...)}
	}
	return req, nil
}
