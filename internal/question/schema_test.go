package question

import "testing"

func TestCheckSchema_Templates(t *testing.T) {
	for _, k := range AllKinds() {
		q, _ := Template(k)
		raw, err := Encode(q)
		if err != nil {
			t.Fatalf("%s: encode: %v", k, err)
		}
		if err := CheckSchema(raw); err != nil {
			t.Errorf("%s template fails its schema: %v", k, err)
		}
	}
}

func TestCheckSchema_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"string answer indices", `{"type":"mcq_single","question":"Q","options":["a"],"answer":["0"]}`},
		{"missing answers", `{"type":"word_fill","question":"Q","sentence_parts":["a","b"]}`},
		{"point with one coordinate", `{"type":"image_tagging","question":"Q","tags":[{"id":"t"}],"answer":{"t":[1]}}`},
		{"tag without id", `{"type":"image_tagging","question":"Q","tags":[{"label":"T"}],"answer":{}}`},
		{"non-string mapping value", `{"type":"match_phrases","question":"Q","pairs":[],"answer":{"a":1}}`},
		{"empty block", `{"type":"multi_questions","questions":[]}`},
		{"bad nested question", `{"type":"multi_questions","questions":[{"type":"categorization","question":"Q","categories":"A","correct":"A"}]}`},
		{"not an object", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckSchema([]byte(tt.raw)); err == nil {
				t.Errorf("expected schema error for %s", tt.raw)
			}
		})
	}
}

func TestCheckSchema_AcceptsAliasesAndUnknown(t *testing.T) {
	for _, raw := range []string{
		`{"type":"word_fill","question":"Q","parts":["a","b"],"answers":["x"]}`,
		`{"type":"list_pick","question":"Q","items":["a"],"answer":[0]}`,
		`{"type":"mcq_single","question":"Q","options":[{"text":"a","image":null}],"answer":[0],"media":null}`,
		`{"type":"essay","anything":true}`,
	} {
		if err := CheckSchema([]byte(raw)); err != nil {
			t.Errorf("CheckSchema(%s) = %v", raw, err)
		}
	}
}
