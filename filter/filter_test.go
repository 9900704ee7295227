package filter

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("invalid test JSON: %v", err)
	}
	return v
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		predicate   bool
		wantErr     bool
		errContains string
	}{
		{
			name:       "projection",
			expression: `map(data, .nickname)`,
		},
		{
			name:       "predicate",
			expression: `battles > 100 and ratio(wins, battles) > 0.5`,
			predicate:  true,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `nickname == "unclosed`,
			predicate:  true,
			wantErr:    true,
		},
		{
			name:        "predicate with non-boolean result",
			expression:  `1 + 2`,
			predicate:   true,
			wantErr:     true,
			errContains: "failed to compile expression",
		},
	}

	c := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				p   *Program
				err error
			)
			if tt.predicate {
				p, err = c.CompilePredicate(tt.expression)
			} else {
				p, err = c.Compile(tt.expression)
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected *CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Expression() != strings.TrimSpace(tt.expression) {
				t.Errorf("Expression() = %q", p.Expression())
			}
		})
	}
}

func TestRun(t *testing.T) {
	data := decode(t, `[{"nickname":"alpha","account_id":1},{"nickname":"beta","account_id":2}]`)

	tests := []struct {
		name       string
		expression string
		want       any
	}{
		{
			name:       "length",
			expression: `len(data)`,
			want:       2,
		},
		{
			name:       "map field",
			expression: `map(data, .nickname)`,
			want:       []any{"alpha", "beta"},
		},
		{
			name:       "index",
			expression: `data[1].account_id`,
			want:       float64(2),
		},
		{
			name:       "helper",
			expression: `upper(data[0].nickname)`,
			want:       "ALPHA",
		},
	}

	c := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := c.Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			got, err := p.Run(data)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	list := decode(t, `[
		{"nickname":"Alpha","battles":1000,"wins":600},
		{"nickname":"beta","battles":50,"wins":40},
		{"nickname":"gamma","battles":2000,"wins":900}
	]`)
	object := decode(t, `{
		"10": {"nickname":"Alpha","battles":1000,"wins":600},
		"20": {"nickname":"beta","battles":50,"wins":40},
		"30": null
	}`)

	c := NewCompiler()
	ctx := context.Background()

	t.Run("list keeps order", func(t *testing.T) {
		p, err := c.CompilePredicate(`battles >= 1000`)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Select(ctx, p, list)
		if err != nil {
			t.Fatal(err)
		}
		entries := got.([]any)
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[1].(map[string]any)["nickname"] != "gamma" {
			t.Errorf("unexpected order: %v", entries)
		}
	})

	t.Run("ratio helper", func(t *testing.T) {
		p, err := c.CompilePredicate(`percent(wins, battles) > 55`)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Select(ctx, p, list)
		if err != nil {
			t.Fatal(err)
		}
		entries := got.([]any)
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
	})

	t.Run("case-insensitive helper", func(t *testing.T) {
		p, err := c.CompilePredicate(`istartsWith(it.nickname, "al")`)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Select(ctx, p, list)
		if err != nil {
			t.Fatal(err)
		}
		if n := len(got.([]any)); n != 1 {
			t.Errorf("got %d entries, want 1", n)
		}
	})

	t.Run("object keys and nulls", func(t *testing.T) {
		p, err := c.CompilePredicate(`key != "10"`)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Select(ctx, p, object)
		if err != nil {
			t.Fatal(err)
		}
		entries := got.(map[string]any)
		if len(entries) != 1 {
			t.Fatalf("got %v, want only entry 20", entries)
		}
		if _, ok := entries["20"]; !ok {
			t.Errorf("entry 20 missing: %v", entries)
		}
	})

	t.Run("scalar data", func(t *testing.T) {
		p, err := c.CompilePredicate(`true`)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Select(ctx, p, "text"); !errors.Is(err, ErrNotCollection) {
			t.Errorf("expected ErrNotCollection, got %v", err)
		}
	})

	t.Run("projection is rejected", func(t *testing.T) {
		p, err := c.Compile(`data`)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Select(ctx, p, list); err == nil {
			t.Error("expected error for projection program")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		p, err := c.CompilePredicate(`true`)
		if err != nil {
			t.Fatal(err)
		}
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := Select(cancelled, p, list); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestApply(t *testing.T) {
	data := decode(t, `[{"nickname":"a","battles":5},{"nickname":"b","battles":50}]`)
	c := NewCompiler()

	where, err := c.CompilePredicate(`battles > 10`)
	if err != nil {
		t.Fatal(err)
	}
	projection, err := c.Compile(`map(data, .nickname)`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Apply(context.Background(), where, projection, data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []any{"b"}) {
		t.Errorf("got %#v", got)
	}

	same, err := Apply(context.Background(), nil, nil, data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(same, data) {
		t.Error("Apply without programs should return data unchanged")
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler(WithCache(2))

	first, err := c.CompilePredicate(`battles > 1`)
	if err != nil {
		t.Fatal(err)
	}
	again, err := c.CompilePredicate(`battles > 1`)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("expected cached program to be reused")
	}

	if _, err := c.Compile(`battles > 1`); err != nil {
		t.Fatal(err)
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2 (kinds are cached separately)", c.Size())
	}

	if _, err := c.Compile(`len(data)`); err != nil {
		t.Fatal(err)
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2 after eviction", c.Size())
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear", c.Size())
	}

	if NewCompiler().Size() != 0 {
		t.Error("uncached compiler should report size 0")
	}
}

func TestCustomFunctions(t *testing.T) {
	c := NewCompiler(WithCustomFunctions(map[string]any{
		"tier": func(level float64) string {
			if level >= 10 {
				return "top"
			}
			return "low"
		},
	}))

	p, err := c.CompilePredicate(`tier(level) == "top"`)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := p.Match("0", map[string]any{"level": float64(10)})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected match")
	}
}

func TestCompilerCacheEviction(t *testing.T) {
	c := NewCompiler(WithCache(2))

	a, err := c.Compile("len(data)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Compile("data"); err != nil {
		t.Fatal(err)
	}

	// touch a so that "data" becomes least recently used
	if again, _ := c.Compile("len(data)"); again != a {
		t.Fatal("expected cached program to be reused")
	}

	if _, err := c.Compile("data != nil"); err != nil {
		t.Fatal(err)
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
	if again, _ := c.Compile("len(data)"); again != a {
		t.Error("recently used program should still be cached")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", c.Size())
	}
}

func TestWithCacheNonPositiveSize(t *testing.T) {
	c := NewCompiler(WithCache(0))
	if _, err := c.Compile("data"); err != nil {
		t.Fatal(err)
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0 with caching disabled", c.Size())
	}
}
