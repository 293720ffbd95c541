// Package bayes provides a multinomial naive-Bayes intent classifier
// trained on a small bag-of-words corpus. It is an alternative to the
// rule-based classifier behind the same nlp.Classifier contract, and
// defers to a fallback classifier for anything its corpus cannot see.
package bayes

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/tsawler/prose/v3"
	"gopkg.in/yaml.v3"

	"github.com/ricardomaia/agendador/internal/nlp"
)

//go:embed corpus.yaml
var corpusYAML []byte

type corpus struct {
	Samples []sample `yaml:"samples"`
}

type sample struct {
	Text   string `yaml:"text"`
	Intent string `yaml:"intent"`
}

type classStats struct {
	docs       int
	tokenCount int
	tokens     map[string]int
}

// Classifier is a multinomial naive-Bayes model over unigram counts
// with Laplace smoothing. Training happens once at construction; after
// that it is read-only and safe for concurrent use.
type Classifier struct {
	fallback nlp.Classifier
	classes  map[nlp.Intent]*classStats
	vocab    map[string]struct{}
	total    int
}

// New trains a classifier from the embedded corpus. fallback handles
// utterances with no vocabulary overlap and intents the corpus does
// not cover.
func New(fallback nlp.Classifier) (*Classifier, error) {
	var c corpus
	if err := yaml.Unmarshal(corpusYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse training corpus: %w", err)
	}
	if len(c.Samples) == 0 {
		return nil, fmt.Errorf("training corpus is empty")
	}

	cls := &Classifier{
		fallback: fallback,
		classes:  make(map[nlp.Intent]*classStats),
		vocab:    make(map[string]struct{}),
	}

	for _, s := range c.Samples {
		intent := nlp.Intent(s.Intent)
		stats, ok := cls.classes[intent]
		if !ok {
			stats = &classStats{tokens: make(map[string]int)}
			cls.classes[intent] = stats
		}
		stats.docs++
		cls.total++
		for _, tok := range tokenize(s.Text) {
			stats.tokens[tok]++
			stats.tokenCount++
			cls.vocab[tok] = struct{}{}
		}
	}

	return cls, nil
}

// Classify scores the utterance against every trained class and returns
// the most likely intent. When the utterance shares no vocabulary with
// the corpus, or when the fallback recognizes an intent this model was
// never trained on, the fallback's answer wins.
func (c *Classifier) Classify(text string) nlp.Intent {
	tokens := tokenize(text)

	known := 0
	for _, tok := range tokens {
		if _, ok := c.vocab[tok]; ok {
			known++
		}
	}
	if known == 0 {
		return c.fallback.Classify(text)
	}

	if ruled := c.fallback.Classify(text); ruled != nlp.IntentUnknown {
		if _, covered := c.classes[ruled]; !covered {
			return ruled
		}
	}

	best := nlp.IntentUnknown
	bestScore := math.Inf(-1)
	vocabSize := float64(len(c.vocab))

	for intent, stats := range c.classes {
		score := math.Log(float64(stats.docs) / float64(c.total))
		for _, tok := range tokens {
			count := float64(stats.tokens[tok])
			score += math.Log((count + 1) / (float64(stats.tokenCount) + vocabSize))
		}
		if score > bestScore {
			bestScore = score
			best = intent
		}
	}

	return best
}

// tokenize lowercases and splits the text into word tokens, dropping
// pure punctuation. prose handles clitics and punctuation attachment
// better than a whitespace split would.
func tokenize(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
		prose.WithSegmentation(false))
	if err != nil {
		return strings.Fields(strings.ToLower(text))
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if !hasLetterOrDigit(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
