package models

import "testing"

func validOptions() OptionSet {
	return OptionSet{
		{ID: "a", Text: "first"},
		{ID: "b", Text: "second"},
		{ID: "c", Text: "third"},
	}
}

func TestOptionSetValidate(t *testing.T) {
	if err := validOptions().Validate(); err != nil {
		t.Errorf("valid option set rejected: %v", err)
	}

	tests := []struct {
		name    string
		options OptionSet
	}{
		{"empty", OptionSet{}},
		{"single option", OptionSet{{ID: "a", Text: "only"}}},
		{"seven options", OptionSet{
			{ID: "a", Text: "x"}, {ID: "b", Text: "x"}, {ID: "c", Text: "x"},
			{ID: "d", Text: "x"}, {ID: "e", Text: "x"}, {ID: "f", Text: "x"},
			{ID: "g", Text: "x"},
		}},
		{"empty id", OptionSet{{ID: "", Text: "x"}, {ID: "b", Text: "y"}}},
		{"empty text", OptionSet{{ID: "a", Text: ""}, {ID: "b", Text: "y"}}},
		{"duplicate id", OptionSet{{ID: "a", Text: "x"}, {ID: "a", Text: "y"}}},
	}

	for _, tt := range tests {
		if err := tt.options.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tt.name)
		}
	}
}

func TestOptionSetContains(t *testing.T) {
	options := validOptions()
	if !options.Contains("b") {
		t.Error("Contains(\"b\") = false, want true")
	}
	if options.Contains("z") {
		t.Error("Contains(\"z\") = true, want false")
	}
}

func TestToServedStripsAnswer(t *testing.T) {
	q := Question{
		ID:            7,
		Prompt:        "What is 2+2?",
		Options:       validOptions(),
		CorrectAnswer: "b",
		Explanation:   "Basic addition.",
	}

	served := q.ToServed()
	if served.ID != q.ID || served.Prompt != q.Prompt {
		t.Error("served question should keep id and prompt")
	}
	if len(served.Options) != len(q.Options) {
		t.Error("served question should keep the full option set")
	}
}
