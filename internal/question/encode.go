package question

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Encode writes q as compact canonical JSON. Keys follow the authored
// layout ("type", "question", payload, answer key, "media"). An *Unknown
// body is written back byte for byte.
func Encode(q Question) ([]byte, error) {
	if u, ok := q.Body.(*Unknown); ok {
		return append([]byte(nil), u.Raw...), nil
	}
	if q.Body == nil {
		return nil, fmt.Errorf("encode question: nil body")
	}

	w := objectWriter{buf: []byte(`{}`)}
	w.set("type", string(q.Kind()))
	if q.Kind() != KindMultiQuestions || q.Text != "" {
		w.set("question", q.Text)
	}

	switch b := q.Body.(type) {
	case *ListPick:
		w.set("options", list(b.Options))
		w.set("answer", list(b.Answer))
	case *MCQSingle:
		w.set("options", list(b.Options))
		w.set("answer", list(b.Answer))
	case *MCQMultiple:
		w.set("options", list(b.Options))
		w.set("answer", list(b.Answer))
	case *WordFill:
		w.set("sentence_parts", list(b.SentenceParts))
		w.set("answers", list(b.Answers))
	case *MatchSentence:
		pairs := make([]sentencePairJSON, len(b.Pairs))
		for i, p := range b.Pairs {
			pairs[i] = sentencePairJSON{Sentence: p.Sentence, ImagePath: p.ImagePath}
			if p.Options != nil {
				opts := p.Options
				pairs[i].Options = &opts
			}
		}
		w.set("pairs", pairs)
		w.set("answer", dict(b.Answer))
	case *Categorization:
		w.set("categories", list(b.Categories))
		w.set("correct", b.Correct)
	case *CategorizationMultiple:
		stimuli := make([]stimulusJSON, len(b.Stimuli))
		for i, s := range b.Stimuli {
			stimuli[i] = stimulusJSON{Text: s.Text}
			if s.Image != "" {
				img := s.Image
				stimuli[i].Image = &img
			}
		}
		w.set("stimuli", stimuli)
		w.set("categories", list(b.Categories))
		w.set("answer", dict(b.Answer))
	case *SequenceAudio:
		opts := make([]audioOptionJSON, len(b.AudioOptions))
		for i, o := range b.AudioOptions {
			opts[i] = audioOptionJSON{Option: o}
		}
		w.set("audio_options", opts)
		w.set("answer", list(b.Answer))
	case *OrderPhrase:
		w.set("phrase_shuffled", list(b.PhraseShuffled))
		w.set("answer", list(b.Answer))
	case *FillBlanksDropdown:
		blanks := make([][]string, len(b.OptionsForBlanks))
		for i, o := range b.OptionsForBlanks {
			blanks[i] = list(o)
		}
		w.set("sentence_parts", list(b.SentenceParts))
		w.set("options_for_blanks", blanks)
		w.set("answers", list(b.Answers))
	case *MatchPhrases:
		pairs := make([]phrasePairJSON, len(b.Pairs))
		for i, p := range b.Pairs {
			pairs[i] = phrasePairJSON{Source: p.Source, Targets: list(p.Targets)}
		}
		w.set("pairs", pairs)
		w.set("answer", dict(b.Answer))
	case *ImageTagging:
		w.set("button_label", b.ButtonLabel)
		w.set("tags", tagsJSON(b.Tags))
		w.set("answer", dict(b.Answer))
		alts := make([]alternativeJSON, len(b.Alternatives))
		for i, a := range b.Alternatives {
			alts[i] = alternativeJSON{
				Media:       mediaJSON{Image: a.Image},
				ButtonLabel: a.ButtonLabel,
				Tags:        tagsJSON(a.Tags),
				Answer:      dict(a.Answer),
			}
		}
		w.set("alternatives", alts)
	case *MultiQuestions:
		var arr bytes.Buffer
		arr.WriteByte('[')
		for i, sub := range b.Questions {
			enc, err := Encode(sub)
			if err != nil {
				return nil, fmt.Errorf("encode question %d of block: %w", i, err)
			}
			if i > 0 {
				arr.WriteByte(',')
			}
			arr.Write(enc)
		}
		arr.WriteByte(']')
		w.setRaw("questions", arr.Bytes())
	}

	if !q.Media.IsZero() {
		w.set("media", mediaJSON{Audio: q.Media.Audio, Video: q.Media.Video, Image: q.Media.Image})
	}

	if w.err != nil {
		return nil, fmt.Errorf("encode %s question: %w", q.Kind(), w.err)
	}
	return w.buf, nil
}

// EncodeIndent is Encode with two-space indentation. Unknown bodies,
// including those nested in a multi_questions block, are still written
// verbatim.
func EncodeIndent(q Question) ([]byte, error) {
	return encodeIndent(q, "")
}

// encodeIndent pretty-prints q for a position whose lines start with
// indent. Only known questions are reformatted.
func encodeIndent(q Question, indent string) ([]byte, error) {
	if _, ok := q.Body.(*Unknown); ok {
		return Encode(q)
	}
	mq, ok := q.Body.(*MultiQuestions)
	if !ok || len(mq.Questions) == 0 {
		b, err := Encode(q)
		if err != nil {
			return nil, err
		}
		return reindent(b, indent), nil
	}

	shell := q
	shell.Body = &MultiQuestions{Questions: []Question{}}
	b, err := Encode(shell)
	if err != nil {
		return nil, err
	}

	inner := indent + "    "
	var arr bytes.Buffer
	arr.WriteByte('[')
	for i, sub := range mq.Questions {
		enc, err := encodeIndent(sub, inner)
		if err != nil {
			return nil, fmt.Errorf("encode question %d of block: %w", i, err)
		}
		if i > 0 {
			arr.WriteByte(',')
		}
		arr.WriteString("\n" + inner)
		arr.Write(enc)
	}
	arr.WriteString("\n" + indent + "  ]")

	// The key is unescaped here, so it cannot match inside a string value.
	return bytes.Replace(reindent(b, indent), []byte(`"questions": []`), append([]byte(`"questions": `), arr.Bytes()...), 1), nil
}

func reindent(compact []byte, indent string) []byte {
	b := bytes.TrimRight(pretty.Pretty(compact), "\n")
	if indent == "" {
		return b
	}
	return bytes.ReplaceAll(b, []byte("\n"), []byte("\n"+indent))
}

// MarshalJSON implements json.Marshaler. Note that encoding/json compacts
// the result; use Encode when unknown objects must stay byte-identical.
func (q Question) MarshalJSON() ([]byte, error) {
	return Encode(q)
}

// objectWriter appends keys in call order and keeps the first error.
type objectWriter struct {
	buf []byte
	err error
}

func (w *objectWriter) set(key string, v any) {
	if w.err != nil {
		return
	}
	w.buf, w.err = sjson.SetBytes(w.buf, key, v)
}

func (w *objectWriter) setRaw(key string, raw []byte) {
	if w.err != nil {
		return
	}
	w.buf, w.err = sjson.SetRawBytes(w.buf, key, raw)
}

type mediaJSON struct {
	Audio string `json:"audio,omitempty"`
	Video string `json:"video,omitempty"`
	Image string `json:"image,omitempty"`
}

type sentencePairJSON struct {
	Sentence  string    `json:"sentence"`
	ImagePath string    `json:"image_path,omitempty"`
	Options   *[]string `json:"options,omitempty"`
}

type stimulusJSON struct {
	Text  string  `json:"text"`
	Image *string `json:"image"`
}

type audioOptionJSON struct {
	Option string `json:"option"`
}

type phrasePairJSON struct {
	Source  string   `json:"source"`
	Targets []string `json:"targets"`
}

type tagJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type alternativeJSON struct {
	Media       mediaJSON        `json:"media"`
	ButtonLabel string           `json:"button_label"`
	Tags        []tagJSON        `json:"tags"`
	Answer      map[string]Point `json:"answer"`
}

func tagsJSON(tags []Tag) []tagJSON {
	out := make([]tagJSON, len(tags))
	for i, t := range tags {
		out[i] = tagJSON{ID: t.ID, Label: t.Label}
	}
	return out
}

// list and dict write nil as [] and {} so encoded questions always carry
// their full field set.
func list[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func dict[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}

var _ json.Marshaler = Question{}
