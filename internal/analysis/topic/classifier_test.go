package topic

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyGreeting(t *testing.T) {
	c := Default()
	for _, q := range []string{"Hello there", "GOOD MORNING", "hey, what lure works for bass?"} {
		if got := c.Classify(q); got != Greeting {
			t.Fatalf("Classify(%q) = %s, want greeting", q, got)
		}
	}
}

func TestClassifyGreetingMatchesInsideWords(t *testing.T) {
	// "this" contains "hi"; matching is unanchored.
	if got := Default().Classify("Is this lure any good?"); got != Greeting {
		t.Fatalf("expected greeting, got %s", got)
	}
}

func TestClassifyOffTopic(t *testing.T) {
	c := Default()
	for _, q := range []string{"What is the weather?", "Tell me about the stock market", "", "   "} {
		if got := c.Classify(q); got != OffTopic {
			t.Fatalf("Classify(%q) = %s, want off_topic", q, got)
		}
	}
}

func TestClassifyOnTopic(t *testing.T) {
	c := Default()
	for _, q := range []string{"Best bait for trout", "What LURE works for BASS?", "Can I eat carp?"} {
		if got := c.Classify(q); got != OnTopic {
			t.Fatalf("Classify(%q) = %s, want on_topic", q, got)
		}
	}
}

func TestLoadKeywordsOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := "greetings: []\nfishing:\n  - \"  Halibut \"\n  - \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write keyword file: %v", err)
	}

	kw, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords err: %v", err)
	}
	if len(kw.Fishing) != 1 || kw.Fishing[0] != "halibut" {
		t.Fatalf("unexpected fishing keywords: %v", kw.Fishing)
	}
	if len(kw.Greetings) != len(defaultGreetings) {
		t.Fatalf("expected default greetings, got %v", kw.Greetings)
	}

	c := NewClassifier(kw)
	if got := c.Classify("Grilled HALIBUT tips"); got != OnTopic {
		t.Fatalf("expected on_topic with custom keyword, got %s", got)
	}
	if got := c.Classify("Best bait for trout"); got != OffTopic {
		t.Fatalf("expected default fishing words to be replaced, got %s", got)
	}
}

func TestLoadKeywordsErrors(t *testing.T) {
	if _, err := LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("fishing: [unterminated"), 0o600); err != nil {
		t.Fatalf("write keyword file: %v", err)
	}
	if _, err := LoadKeywords(path); err == nil {
		t.Fatal("expected parse error")
	}
}
