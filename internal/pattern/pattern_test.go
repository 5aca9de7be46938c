package pattern

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty string", raw: "", want: nil},
		{name: "only delimiters and blanks", raw: " , ,, ", want: nil},
		{name: "single fragment", raw: "Manager", want: []string{"Manager"}},
		{name: "trims and collapses duplicates", raw: "Manager, Manager ,Helper", want: []string{"Manager", "Helper"}},
		{name: "keeps first occurrence order", raw: "Helper,Manager,Helper", want: []string{"Helper", "Manager"}},
		{name: "keeps overlapping fragments", raw: "Man,Manager", want: []string{"Man", "Manager"}},
		{name: "case is significant", raw: "manager,Manager", want: []string{"manager", "Manager"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.raw).Fragments()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Split(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		candidate string
		want      []string
	}{
		{name: "suffix match", raw: "Manager", candidate: "UserManager", want: []string{"Manager"}},
		{name: "all fragments reported", raw: "Manager,Helper", candidate: "TaskManagerHelper", want: []string{"Manager", "Helper"}},
		{name: "configured order wins over name order", raw: "Helper,Manager", candidate: "ManagerHelper", want: []string{"Helper", "Manager"}},
		{name: "no match", raw: "Manager", candidate: "Repository", want: nil},
		{name: "case sensitive", raw: "Manager", candidate: "Usermanager", want: nil},
		{name: "empty candidate", raw: "Impl", candidate: "", want: nil},
		{name: "empty set", raw: "", candidate: "Manager", want: nil},
		{name: "overlapping fragments both match", raw: "Man,Manager", candidate: "UserManager", want: []string{"Man", "Manager"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.raw).Matches(tt.candidate)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Matches(%q) mismatch (-want +got):\n%s", tt.candidate, diff)
			}
		})
	}
}

func TestFragments_ReturnsCopy(t *testing.T) {
	s := Split("Manager,Helper")
	fs := s.Fragments()
	fs[0] = "Mutated"
	if got := s.Fragments()[0]; got != "Manager" {
		t.Fatalf("set mutated through Fragments(): got %q", got)
	}
	if s.Len() != 2 || s.Empty() {
		t.Fatalf("unexpected Len/Empty: %d/%v", s.Len(), s.Empty())
	}
	if s.String() != "Manager,Helper" {
		t.Fatalf("String() = %q", s.String())
	}
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genFragment := gen.AlphaString().SuchThat(func(s string) bool { return s != "" })

	properties.Property("fragment contained in name is always reported", prop.ForAll(
		func(prefix, frag, suffix string) bool {
			s := Split(frag)
			for _, m := range s.Matches(prefix + frag + suffix) {
				if m == frag {
					return true
				}
			}
			return false
		},
		gen.AlphaString(), genFragment, gen.AlphaString(),
	))

	properties.Property("empty configuration never matches", prop.ForAll(
		func(name string) bool {
			return len(Split("").Matches(name)) == 0
		},
		gen.AnyString(),
	))

	properties.Property("matches are idempotent", prop.ForAll(
		func(frags []string, name string) bool {
			s := Split(strings.Join(frags, ","))
			return cmp.Equal(s.Matches(name), s.Matches(name))
		},
		gen.SliceOf(gen.AlphaString()), gen.AlphaString(),
	))

	properties.Property("matches follow configured order", prop.ForAll(
		func(frags []string, name string) bool {
			s := Split(strings.Join(frags, ","))
			all := s.Fragments()
			idx := 0
			for _, m := range s.Matches(name) {
				for idx < len(all) && all[idx] != m {
					idx++
				}
				if idx == len(all) {
					return false
				}
				idx++
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()), gen.AlphaString(),
	))

	properties.Property("every match is a substring of the name", prop.ForAll(
		func(frags []string, name string) bool {
			for _, m := range Split(strings.Join(frags, ",")).Matches(name) {
				if m == "" || !strings.Contains(name, m) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
