package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LabResults is the ordered set of lab test panels for one patient. On the
// wire it is a two-level JSON object (panel name -> test name -> result);
// decoding preserves the document's panel and test order, which standard
// Go maps would lose. Only string results are retained; any other leaf
// value is dropped without error.
type LabResults []LabPanel

// LabPanel is a named group of related tests, e.g. "LipidProfile".
type LabPanel struct {
	Name  string
	Tests []LabTest
}

// LabTest is a single test result. Result is a qualitative tag such as
// "normal", "high", "low", "borderline" or "not_tested".
type LabTest struct {
	Name   string
	Result string
}

// UnmarshalJSON decodes the two-level result object, keeping insertion
// order. A panel whose value is not an object is skipped, matching the
// lenient reading applied everywhere else in the record.
func (l *LabResults) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("lab results: expected object, got %v", tok)
	}

	var out LabResults
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("lab results: bad panel key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if tests, ok := decodePanel(raw); ok {
			out = append(out, LabPanel{Name: name, Tests: tests})
		}
	}
	*l = out
	return nil
}

// decodePanel walks one panel object in order. It returns false when the
// value is not an object at all.
func decodePanel(raw json.RawMessage) ([]LabTest, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}

	var tests []LabTest
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, false
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			tests = append(tests, LabTest{Name: name, Result: s})
		}
	}
	return tests, true
}

// MarshalJSON writes the panels back as a JSON object in their stored
// order, so a load/store cycle leaves the document stable.
func (l LabResults) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, panel := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, panel.Name); err != nil {
			return nil, err
		}
		buf.WriteString(":{")
		for j, test := range panel.Tests {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(&buf, test.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeString(&buf, test.Result); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
