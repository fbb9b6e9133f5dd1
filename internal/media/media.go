// Package media resolves the image, audio and video paths referenced by
// questions. It never opens or plays media; front ends receive a path
// plus the base directory it was resolved against.
package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wifeymooc/quizkit/internal/question"
)

// Ref is one media path referenced by a question.
type Ref struct {
	// Path is the path as authored.
	Path string

	// Field locates the reference inside the question, e.g.
	// "options[1].image" or "questions[0].media.audio".
	Field string
}

// Resolve returns the filesystem path for p. Absolute paths are returned
// cleaned; relative paths are joined to baseDir. An empty path stays
// empty. A leading "~/" expands to the user's home directory.
func Resolve(p, baseDir string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

// Refs lists every media path referenced by q, nested questions
// included, in document order. Empty paths are skipped.
func Refs(q question.Question) []Ref {
	var out []Ref
	collect(&out, "", q)
	return out
}

func collect(out *[]Ref, prefix string, q question.Question) {
	add := func(field, p string) {
		if p != "" {
			*out = append(*out, Ref{Path: p, Field: prefix + field})
		}
	}
	add("media.audio", q.Media.Audio)
	add("media.video", q.Media.Video)
	add("media.image", q.Media.Image)

	switch b := q.Body.(type) {
	case *question.ListPick:
		addOptions(add, b.Options)
	case *question.MCQSingle:
		addOptions(add, b.Options)
	case *question.MCQMultiple:
		addOptions(add, b.Options)
	case *question.MatchSentence:
		for i, p := range b.Pairs {
			add(fmt.Sprintf("pairs[%d].image_path", i), p.ImagePath)
		}
	case *question.CategorizationMultiple:
		for i, s := range b.Stimuli {
			add(fmt.Sprintf("stimuli[%d].image", i), s.Image)
		}
	case *question.SequenceAudio:
		for i, a := range b.AudioOptions {
			add(fmt.Sprintf("audio_options[%d].option", i), a)
		}
	case *question.ImageTagging:
		for i, a := range b.Alternatives {
			add(fmt.Sprintf("alternatives[%d].media.image", i), a.Image)
		}
	case *question.MultiQuestions:
		for i, sub := range b.Questions {
			collect(out, fmt.Sprintf("%squestions[%d].", prefix, i), sub)
		}
	}
}

func addOptions(add func(field, p string), opts []question.Option) {
	for i, o := range opts {
		add(fmt.Sprintf("options[%d].image", i), o.Image)
	}
}

// Missing returns the references of q whose resolved file does not exist
// or is a directory. Other stat failures are returned as an error.
func Missing(q question.Question, baseDir string) ([]Ref, error) {
	var missing []Ref
	for _, r := range Refs(q) {
		info, err := os.Stat(Resolve(r.Path, baseDir))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, r)
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", r.Path, err)
		case info.IsDir():
			missing = append(missing, r)
		}
	}
	return missing, nil
}

// BaseDir picks the directory relative media paths resolve against: the
// override when set, otherwise the directory of the bank file.
func BaseDir(override, bankPath string) string {
	if override != "" {
		return override
	}
	if bankPath == "" {
		return "."
	}
	return filepath.Dir(bankPath)
}
