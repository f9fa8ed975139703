package advisory

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	answer string
	err    error
	prompt string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func TestStripJSONFences(t *testing.T) {
	cases := map[string]string{
		"```json\n[{\"name\":\"Rice\"}]\n```": `[{"name":"Rice"}]`,
		"```\n[1,2]\n```":                     "[1,2]",
		`[{"name":"Rice"}]`:                   `[{"name":"Rice"}]`,
		"  plain text  ":                      "plain text",
	}
	for in, want := range cases {
		if got := StripJSONFences(in); got != want {
			t.Errorf("StripJSONFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecommendCrops_NilProviderUsesDefaults(t *testing.T) {
	a := NewAdvisor(nil, nil)
	got := a.RecommendCrops(context.Background(), Inputs{Location: "Amalapuram"})
	if len(got) != 5 {
		t.Fatalf("expected 5 crops, got %d", len(got))
	}
	if got[0].Name != "Wheat" {
		t.Errorf("unexpected default crops: %+v", got)
	}
}

func TestRecommendCrops_ParsesFencedAnswer(t *testing.T) {
	p := &fakeProvider{answer: "```json\n[" +
		`{"name":"Paddy","reason":"Delta soil and canal water"},` +
		`{"name":"Banana","reason":"High water table"},` +
		`{"name":"Coconut","reason":"Coastal climate"},` +
		`{"name":"Turmeric","reason":"Alluvial soil"},` +
		`{"name":"Sesame","reason":"Short duration"}` +
		"]\n```"}

	a := NewAdvisor(p, nil)
	got := a.RecommendCrops(context.Background(), Inputs{Location: "Amalapuram", Season: "kharif"})
	if len(got) != 5 {
		t.Fatalf("expected 5 crops, got %d", len(got))
	}
	if got[0].Name != "Paddy" || got[4].Name != "Sesame" {
		t.Errorf("unexpected crops: %+v", got)
	}
	if !strings.Contains(p.prompt, "Location: Amalapuram") || !strings.Contains(p.prompt, "Season: kharif") {
		t.Errorf("prompt missing inputs:\n%s", p.prompt)
	}
}

func TestRecommendCrops_ShortAnswerPadded(t *testing.T) {
	p := &fakeProvider{answer: `[{"name":"Paddy","reason":"Delta soil"},{"name":"Banana","reason":"Water table"}]`}

	a := NewAdvisor(p, nil)
	got := a.RecommendCrops(context.Background(), Inputs{})
	if len(got) != 5 {
		t.Fatalf("expected 5 crops, got %d", len(got))
	}
	if got[0].Name != "Paddy" || got[1].Name != "Banana" {
		t.Errorf("provider crops must come first: %+v", got)
	}
	// Padding comes from the defaults, positionally
	if got[2].Name != "Cotton" || got[3].Name != "Sugarcane" || got[4].Name != "Maize" {
		t.Errorf("unexpected padding: %+v", got)
	}
}

func TestRecommendCrops_LongAnswerTruncated(t *testing.T) {
	p := &fakeProvider{answer: `[
		{"name":"A","reason":"r"},{"name":"B","reason":"r"},{"name":"C","reason":"r"},
		{"name":"D","reason":"r"},{"name":"E","reason":"r"},{"name":"F","reason":"r"},
		{"name":"G","reason":"r"}]`}

	a := NewAdvisor(p, nil)
	got := a.RecommendCrops(context.Background(), Inputs{})
	if len(got) != 5 {
		t.Fatalf("expected 5 crops, got %d", len(got))
	}
	if got[4].Name != "E" {
		t.Errorf("unexpected truncation: %+v", got)
	}
}

func TestRecommendCrops_ProviderErrorUsesDefaults(t *testing.T) {
	p := &fakeProvider{err: errors.New("rate limited")}
	a := NewAdvisor(p, nil)
	got := a.RecommendCrops(context.Background(), Inputs{})
	if len(got) != 5 || got[0].Name != "Wheat" {
		t.Errorf("expected default crops on provider error: %+v", got)
	}
}

func TestRecommendCrops_MalformedAnswerUsesDefaults(t *testing.T) {
	p := &fakeProvider{answer: "I think you should plant rice because it rains a lot."}
	a := NewAdvisor(p, nil)
	got := a.RecommendCrops(context.Background(), Inputs{})
	if len(got) != 5 || got[0].Name != "Wheat" {
		t.Errorf("expected default crops on malformed answer: %+v", got)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("empty provider name must disable the advisory layer, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Errorf("openai without API key must fail")
	}

	p, err = NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil || p == nil {
		t.Errorf("expected openai provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "gemini"}); err == nil {
		t.Errorf("unknown provider must fail")
	}
}
