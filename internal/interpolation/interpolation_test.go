package interpolation

import (
	"reflect"
	"testing"
)

func TestFind(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"You have %d coins", []string{"%d"}},
		{"%w1 gives %s to %m8", []string{"%w1", "%s", "%m8"}},
		{"100%% sure", []string{"%%"}},
		{"Slot {0} of {1}", []string{"{0}", "{1}"}},
		{"no placeholders here", nil},
		{"50% chance", nil},
	}
	for _, tt := range tests {
		if got := Find(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Find(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsNoise(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"%s", true},
		{"%d.", true},
		{"...!?", true},
		{"  ", true},
		{"42", true},
		{"%s apples", false},
		{"Hi", false},
		{"שלום", false},
	}
	for _, tt := range tests {
		if got := IsNoise(tt.in); got != tt.want {
			t.Errorf("IsNoise(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiff(t *testing.T) {
	// given
	missing, extra := Diff("%s has %d gold", "%d זהב ל %w1")

	// then
	if !reflect.DeepEqual(missing, []string{"%s"}) {
		t.Errorf("missing = %v", missing)
	}
	if !reflect.DeepEqual(extra, []string{"%w1"}) {
		t.Errorf("extra = %v", extra)
	}
}

func TestUnion(t *testing.T) {
	got := Union([]string{"%s", "%d"}, []string{"%d", "%w1"})
	if want := []string{"%s", "%d", "%w1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Union = %v, want %v", got, want)
	}
}
