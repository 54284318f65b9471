package filings

import "testing"

func TestParseFormType(t *testing.T) {
	cases := []struct {
		in   string
		want FormType
	}{
		{"10-k", Form10K},
		{"10-K", Form10K},
		{"10k", Form10K},
		{" 10-K/A ", Form10KA},
		{"10q", Form10Q},
		{"8K", Form8K},
	}
	for _, c := range cases {
		got, err := ParseFormType(c.in)
		if err != nil {
			t.Errorf("ParseFormType(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseFormType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if _, err := ParseFormType("s-1"); err == nil {
		t.Error("expected an error for an unsupported form")
	}
}

func TestFormType_Dir(t *testing.T) {
	if got := Form10KA.Dir(); got != "10-k_a" {
		t.Errorf("Dir = %q, amended forms must not split the path", got)
	}
	if got := Form10K.Dir(); got != "10-k" {
		t.Errorf("Dir = %q", got)
	}
}

func TestID(t *testing.T) {
	id := ID{Form: Form10Q, Year: 2003, Quarter: 2, Name: "0000912057-03-000123.txt"}
	if got := id.String(); got != "10-q/2003/q2/0000912057-03-000123.txt" {
		t.Errorf("String = %q", got)
	}
	if got := id.Stem(); got != "0000912057-03-000123" {
		t.Errorf("Stem = %q", got)
	}
}
