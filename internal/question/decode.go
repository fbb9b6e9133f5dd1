package question

import (
	"math"

	"github.com/tidwall/gjson"
)

// Decode builds a Question from a JSON object. It never fails: absent or
// mistyped fields become zero values, and input that is not an object with
// a recognized "type" decodes to *Unknown holding the original bytes.
func Decode(data []byte) Question {
	if !gjson.ValidBytes(data) {
		return unknown(data, "")
	}
	return decodeResult(gjson.ParseBytes(data), data)
}

// DecodeValue decodes an already-parsed value, as found inside a bank array
// or a composite block.
func DecodeValue(r gjson.Result) Question {
	return decodeResult(r, []byte(r.Raw))
}

// UnmarshalJSON implements json.Unmarshaler with Decode's coercion rules.
func (q *Question) UnmarshalJSON(data []byte) error {
	*q = Decode(data)
	return nil
}

func decodeResult(r gjson.Result, raw []byte) Question {
	if !r.IsObject() {
		return unknown(raw, "")
	}
	typeName := str(r.Get("type"))
	kind, ok := ParseKind(typeName)
	if !ok {
		return unknown(raw, typeName)
	}

	q := Question{
		Text:  str(r.Get("question")),
		Media: decodeMedia(r.Get("media")),
	}

	switch kind {
	case KindListPick:
		q.Body = &ListPick{
			Options: decodeOptions(first(r, "options", "items")),
			Answer:  indexList(r.Get("answer")),
		}
	case KindMCQSingle:
		q.Body = &MCQSingle{
			Options: decodeOptions(r.Get("options")),
			Answer:  indexList(r.Get("answer")),
		}
	case KindMCQMultiple:
		q.Body = &MCQMultiple{
			Options: decodeOptions(r.Get("options")),
			Answer:  indexList(r.Get("answer")),
		}
	case KindWordFill:
		q.Body = &WordFill{
			SentenceParts: strList(first(r, "sentence_parts", "parts")),
			Answers:       strList(r.Get("answers")),
		}
	case KindMatchSentence:
		q.Body = decodeMatchSentence(r)
	case KindCategorization:
		q.Body = &Categorization{
			Categories: strList(r.Get("categories")),
			Correct:    str(r.Get("correct")),
		}
	case KindCategorizationMultiple:
		q.Body = &CategorizationMultiple{
			Stimuli:    decodeStimuli(first(r, "stimuli", "items")),
			Categories: strList(r.Get("categories")),
			Answer:     strMap(r.Get("answer")),
		}
	case KindSequenceAudio:
		q.Body = &SequenceAudio{
			AudioOptions: decodeAudioOptions(r.Get("audio_options")),
			Answer:       indexList(r.Get("answer")),
		}
	case KindOrderPhrase:
		q.Body = &OrderPhrase{
			PhraseShuffled: strList(first(r, "phrase_shuffled", "words")),
			Answer:         strList(r.Get("answer")),
		}
	case KindFillBlanksDropdown:
		q.Body = decodeFillBlanksDropdown(r)
	case KindMatchPhrases:
		q.Body = decodeMatchPhrases(r)
	case KindImageTagging:
		if q.Media.Image == "" {
			q.Media.Image = str(r.Get("image"))
		}
		q.Body = decodeImageTagging(r)
	case KindMultiQuestions:
		mq := &MultiQuestions{Questions: []Question{}}
		each(r.Get("questions"), func(v gjson.Result) {
			mq.Questions = append(mq.Questions, DecodeValue(v))
		})
		q.Body = mq
	}
	return q
}

func unknown(raw []byte, typeName string) Question {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Question{Body: &Unknown{TypeName: typeName, Raw: cp}}
}

func decodeMedia(r gjson.Result) Media {
	if !r.IsObject() {
		return Media{}
	}
	return Media{
		Audio: str(r.Get("audio")),
		Video: str(r.Get("video")),
		Image: str(r.Get("image")),
	}
}

func decodeOptions(r gjson.Result) []Option {
	out := []Option{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		switch {
		case v.Type == gjson.String:
			out = append(out, Option{Text: v.Str})
		case v.IsObject():
			out = append(out, Option{
				Text:  str(v.Get("text")),
				Image: str(v.Get("image")),
				Rich:  true,
			})
		default:
			// Keep the slot so authored answer indices stay aligned.
			out = append(out, Option{})
		}
	}
	return out
}

func decodeMatchSentence(r gjson.Result) *MatchSentence {
	ms := &MatchSentence{Pairs: []SentencePair{}, Answer: strMap(r.Get("answer"))}
	each(r.Get("pairs"), func(v gjson.Result) {
		p := SentencePair{
			Sentence:  str(first(v, "sentence", "left")),
			ImagePath: str(v.Get("image_path")),
		}
		if opts := v.Get("options"); opts.IsArray() {
			p.Options = strList(opts)
		}
		ms.Pairs = append(ms.Pairs, p)
	})
	return ms
}

func decodeStimuli(r gjson.Result) []Stimulus {
	out := []Stimulus{}
	each(r, func(v gjson.Result) {
		if v.Type == gjson.String {
			out = append(out, Stimulus{Text: v.Str})
			return
		}
		out = append(out, Stimulus{
			Text:  str(v.Get("text")),
			Image: str(v.Get("image")),
		})
	})
	return out
}

func decodeAudioOptions(r gjson.Result) []string {
	out := []string{}
	each(r, func(v gjson.Result) {
		if v.Type == gjson.String {
			out = append(out, v.Str)
		} else {
			out = append(out, str(v.Get("option")))
		}
	})
	return out
}

func decodeFillBlanksDropdown(r gjson.Result) *FillBlanksDropdown {
	fb := &FillBlanksDropdown{
		SentenceParts:    strList(r.Get("sentence_parts")),
		OptionsForBlanks: [][]string{},
		Answers:          strList(r.Get("answers")),
	}
	each(r.Get("options_for_blanks"), func(v gjson.Result) {
		fb.OptionsForBlanks = append(fb.OptionsForBlanks, strList(v))
	})
	return fb
}

func decodeMatchPhrases(r gjson.Result) *MatchPhrases {
	mp := &MatchPhrases{Pairs: []PhrasePair{}, Answer: strMap(r.Get("answer"))}
	each(r.Get("pairs"), func(v gjson.Result) {
		mp.Pairs = append(mp.Pairs, PhrasePair{
			Source:  str(v.Get("source")),
			Targets: strList(v.Get("targets")),
		})
	})
	return mp
}

func decodeImageTagging(r gjson.Result) *ImageTagging {
	it := &ImageTagging{
		ButtonLabel:  str(r.Get("button_label")),
		Tags:         decodeTags(r.Get("tags")),
		Answer:       pointMap(r.Get("answer")),
		Alternatives: []TaggingAlternative{},
	}
	each(r.Get("alternatives"), func(v gjson.Result) {
		alt := TaggingAlternative{
			Image:       str(v.Get("media.image")),
			ButtonLabel: str(v.Get("button_label")),
			Tags:        decodeTags(v.Get("tags")),
			Answer:      pointMap(v.Get("answer")),
		}
		if alt.Image == "" {
			alt.Image = str(v.Get("image"))
		}
		it.Alternatives = append(it.Alternatives, alt)
	})
	return it
}

func decodeTags(r gjson.Result) []Tag {
	out := []Tag{}
	each(r, func(v gjson.Result) {
		out = append(out, Tag{ID: str(v.Get("id")), Label: str(v.Get("label"))})
	})
	return out
}

// each visits the elements of an array and ignores any other value.
func each(r gjson.Result, fn func(gjson.Result)) {
	if !r.IsArray() {
		return
	}
	for _, v := range r.Array() {
		fn(v)
	}
}

// first returns the first of the given keys present on r.
func first(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func str(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return ""
}

// strList keeps positions: non-string elements become "".
func strList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		out = append(out, str(v))
	}
	return out
}

// indexList keeps non-negative integral numbers and drops everything else.
func indexList(r gjson.Result) []int {
	out := []int{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		if v.Type != gjson.Number || v.Num < 0 || v.Num != math.Trunc(v.Num) {
			continue
		}
		out = append(out, int(v.Num))
	}
	return out
}

// strMap iterates with ForEach because answer keys are file names and
// sentences that may contain path syntax.
func strMap(r gjson.Result) map[string]string {
	out := map[string]string{}
	if !r.IsObject() {
		return out
	}
	r.ForEach(func(k, v gjson.Result) bool {
		out[k.Str] = str(v)
		return true
	})
	return out
}

func pointMap(r gjson.Result) map[string]Point {
	out := map[string]Point{}
	if !r.IsObject() {
		return out
	}
	r.ForEach(func(k, v gjson.Result) bool {
		arr := v.Array()
		if len(arr) < 2 || arr[0].Type != gjson.Number || arr[1].Type != gjson.Number {
			return true
		}
		out[k.Str] = Point{X: arr[0].Num, Y: arr[1].Num}
		return true
	})
	return out
}
