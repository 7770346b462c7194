package records

import "testing"

func TestParseLibraryStatus(t *testing.T) {
	tests := []struct {
		in   string
		want LibraryStatus
	}{
		{in: "", want: StatusAvailable},
		{in: "  Available ", want: StatusAvailable},
		{in: "checked-out", want: StatusCheckedOut},
		{in: "Checked Out", want: StatusCheckedOut},
		{in: "checked_out", want: StatusCheckedOut},
		{in: "CheckedOut", want: StatusCheckedOut},
		{in: " On Hold ", want: LibraryStatus("On Hold")},
	}

	for _, tt := range tests {
		if got := ParseLibraryStatus(tt.in); got != tt.want {
			t.Errorf("ParseLibraryStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
