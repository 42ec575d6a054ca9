package frontmatter

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     Fields
		wantErr  error
	}{
		{
			name:     "name and description",
			input:    "---\nname: Deploy\ndescription: Ship it\n---\n\n# Steps\n\nRun make.\n",
			fallback: "deploy",
			want:     Fields{Name: "Deploy", Description: "Ship it", Body: "# Steps\n\nRun make."},
		},
		{
			name:     "no header uses fallback and trims",
			input:    "\n  Just a body.  \n\n",
			fallback: "general",
			want:     Fields{Name: "general", Body: "Just a body."},
		},
		{
			name:     "description only",
			input:    "---\ndescription: Reviews code\n---\nBody",
			fallback: "reviewer",
			want:     Fields{Name: "reviewer", Description: "Reviews code", Body: "Body"},
		},
		{
			name:     "numeric values are accepted",
			input:    "---\nname: 42\ndescription: 1.5\n---\nBody",
			fallback: "x",
			want:     Fields{Name: "42", Description: "1.5", Body: "Body"},
		},
		{
			name:     "non-scalar values fall back",
			input:    "---\nname: [a, b]\ndescription: {k: v}\n---\nBody",
			fallback: "x",
			want:     Fields{Name: "x", Body: "Body"},
		},
		{
			name:     "boolean is not a name",
			input:    "---\nname: true\n---\nBody",
			fallback: "x",
			want:     Fields{Name: "x", Body: "Body"},
		},
		{
			name:     "invalid yaml keeps split body",
			input:    "---\nname: [unclosed\n---\nStill the body\n",
			fallback: "broken",
			want:     Fields{Name: "broken", Body: "Still the body"},
			wantErr:  ErrInvalidHeader,
		},
		{
			name:     "scalar header is invalid",
			input:    "---\njust text\n---\nBody",
			fallback: "plain",
			want:     Fields{Name: "plain", Body: "Body"},
			wantErr:  ErrInvalidHeader,
		},
		{
			name:     "unterminated header is all body",
			input:    "---\nname: x\nno closing line",
			fallback: "open",
			want:     Fields{Name: "open", Body: "---\nname: x\nno closing line"},
		},
		{
			name:     "trailing spaces on delimiters",
			input:    "---  \nname: spaced\n---\t\nBody",
			fallback: "x",
			want:     Fields{Name: "spaced", Body: "Body"},
		},
		{
			name:     "later delimiter stays in body",
			input:    "---\nname: first\n---\nabove\n---\nbelow",
			fallback: "x",
			want:     Fields{Name: "first", Body: "above\n---\nbelow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input, tt.fallback)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Extract() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	header, body, ok := Split("---\na: 1\nb: 2\n---\nrest\n")
	if !ok {
		t.Fatal("Split() ok = false, want true")
	}
	if header != "a: 1\nb: 2" {
		t.Errorf("header = %q", header)
	}
	if body != "rest\n" {
		t.Errorf("body = %q", body)
	}

	_, body, ok = Split("no header")
	if ok || body != "no header" {
		t.Errorf("Split(no header) = %q, %v", body, ok)
	}
}

func TestFormat(t *testing.T) {
	type matter struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description,omitempty"`
	}

	tests := []struct {
		name   string
		matter matter
		body   string
		want   string
	}{
		{
			name:   "with body",
			matter: matter{Name: "deploy", Description: "Ship it"},
			body:   "# Deploy",
			want:   "---\nname: deploy\ndescription: Ship it\n---\n\n# Deploy\n",
		},
		{
			name:   "empty body",
			matter: matter{Name: "deploy"},
			want:   "---\nname: deploy\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.matter, tt.body)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}

			f, err := Extract(string(got), "fallback")
			if err != nil {
				t.Fatalf("Extract(Format()) error = %v", err)
			}
			if f.Name != tt.matter.Name || f.Description != tt.matter.Description {
				t.Errorf("round trip = %+v", f)
			}
		})
	}
}
