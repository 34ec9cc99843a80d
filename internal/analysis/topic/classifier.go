package topic

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category 表示问题的路由类别。
type Category string

const (
	Greeting Category = "greeting"
	OffTopic Category = "off_topic"
	OnTopic  Category = "on_topic"
)

var defaultGreetings = []string{
	"hello", "hi", "how are you", "hey", "good morning", "good afternoon", "good evening",
}

var defaultFishing = []string{
	"fishing", "bait", "lure", "rod", "reel", "catch", "fishing trip", "type",
	"fishing gear", "angler", "fly fishing", "deep sea fishing",
	"fishing techniques", "fishing spots", "fishing regulations",
	"tackle", "fishing boat", "fishing license", "fishing season",
	"fishing tips", "fishing knots", "fishing line", "fishing tackle",
	"saltwater fishing", "freshwater fishing", "fishing guide",
	"fish species", "fishing reports", "ice fishing", "shore fishing",
	"casting", "casting accuracy", "trout", "salmon", "bass",
	"catfish", "perch", "walleye", "pike", "carp", "crappie",
	"mackerel", "marlin", "swordfish", "tuna", "fishing bait",
	"live bait", "artificial bait", "jig", "spinner", "spoon",
	"crankbait", "swimbait", "topwater", "chumming", "drift fishing",
	"bottom fishing", "trolling", "jigging", "surf fishing", "pier fishing",
	"kayak fishing", "boat fishing", "ice auger", "fish finder",
	"fishing rod holder", "fishing net", "fishing waders", "fishing vest",
	"catch and release", "barbless hooks", "fishing charter", "fishing lodge", "fish",
}

// Keywords holds the substring sets used for classification.
type Keywords struct {
	Greetings []string `yaml:"greetings"`
	Fishing   []string `yaml:"fishing"`
}

// DefaultKeywords returns a copy of the built-in keyword sets.
func DefaultKeywords() Keywords {
	return Keywords{
		Greetings: append([]string(nil), defaultGreetings...),
		Fishing:   append([]string(nil), defaultFishing...),
	}
}

// LoadKeywords reads a YAML keyword file. Lists left empty in the file keep
// their defaults.
func LoadKeywords(path string) (Keywords, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("read keyword file: %w", err)
	}

	var parsed Keywords
	if err := yaml.Unmarshal(b, &parsed); err != nil {
		return Keywords{}, fmt.Errorf("parse keyword file %s: %w", path, err)
	}

	kw := DefaultKeywords()
	if greetings := normalize(parsed.Greetings); len(greetings) > 0 {
		kw.Greetings = greetings
	}
	if fishing := normalize(parsed.Fishing); len(fishing) > 0 {
		kw.Fishing = fishing
	}
	return kw, nil
}

// Classifier 基于关键词子串匹配判断问题类别。
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	greetings []string
	fishing   []string
}

// NewClassifier builds a classifier from the given keyword sets.
func NewClassifier(kw Keywords) *Classifier {
	return &Classifier{
		greetings: normalize(kw.Greetings),
		fishing:   normalize(kw.Fishing),
	}
}

// Default returns a classifier over the built-in keyword sets.
func Default() *Classifier {
	return NewClassifier(DefaultKeywords())
}

// Classify 判断问题属于问候、离题还是钓鱼相关。问候优先于钓鱼关键词。
func (c *Classifier) Classify(question string) Category {
	normalized := strings.ToLower(question)

	if containsAny(normalized, c.greetings) {
		return Greeting
	}
	if !containsAny(normalized, c.fishing) {
		return OffTopic
	}
	return OnTopic
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
