package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Schema struct {
	Schema      string             `json:"$schema"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        jsonschemaType     `json:"type"`
	Properties  map[string]*Schema `json:"properties"`
	Items       *Schema            `json:"items"`
	Default     interface{}        `json:"default"`

	AdditionalProperties bool      `json:"additionalProperties"`
	MinLength            int       `json:"minLength"`
	Pattern              string    `json:"pattern"`
	Enum                 []*string `json:"enum"`
	Required             []string  `json:"required"`

	// Extra fields for template args.
	Path string `json:"-"`
}

// RequiredStr returns "required" or "optional" if the given
// field is in the list of required fields for this schema.
func (s *Schema) RequiredStr(field string) string {
	for _, req := range s.Required {
		if req == field {
			return "required"
		}
	}
	return "optional"
}

// DefaultStr renders the default value as inline code, or "" if there is none.
func (s *Schema) DefaultStr() string {
	if s.Default == nil {
		return ""
	}
	b, err := json.Marshal(s.Default)
	if err != nil {
		return ""
	}
	// Strings read better unquoted.
	return "`" + strings.Trim(string(b), `"`) + "`"
}

// EnumStr joins the enum list for this schema into human-readable markdown, such as
// "Must be one of `local`, `remote`, or `none`."  If this schema has no enum field,
// an empty string is returned.
func (s *Schema) EnumStr() string {
	strs := make([]string, 0, len(s.Enum))
	for _, val := range s.Enum {
		if val == nil {
			strs = append(strs, "`null`")
		} else if *val == "" {
			strs = append(strs, "`\"\"`")
		} else {
			strs = append(strs, "`"+*val+"`")
		}
	}

	var result string
	if len(strs) > 1 {
		last := len(strs) - 1
		result = "Must be one of " + strings.Join(strs[:last], ", ") + ", or " + strs[last] + "."
	} else if len(strs) == 1 {
		result = "Must be " + strs[0] + "."
	}
	return result
}

// Special parsing for the `type` field, which can be a string or []string.
// Normalize the "type" to []string.
type jsonschemaType []string

func (t *jsonschemaType) UnmarshalJSON(data []byte) error {
	var array []string
	if err := json.Unmarshal(data, &array); err == nil {
		*t = append(*t, array...)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*t = append(*t, str)
		return nil
	}

	return fmt.Errorf("cannot unmarshal type field as string or []string: %s", string(data))
}

// Is reports whether kind is one of the schema's types.
func (t jsonschemaType) Is(kind string) bool {
	for _, k := range t {
		if k == kind {
			return true
		}
	}
	return false
}

// String renders the types for the reference table, e.g. "string | null".
func (t jsonschemaType) String() string {
	return strings.Join(t, " | ")
}
