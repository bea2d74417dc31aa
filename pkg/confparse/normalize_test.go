package confparse

import (
	"reflect"
	"testing"
)

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain lines pass through",
			text: "hostname R1\n interface Vlan100",
			want: []string{"hostname R1", " interface Vlan100"},
		},
		{
			name: "line number prefix stripped, indentation kept",
			text: "    1 |hostname R1\n    2 | ip address 10.0.0.1 255.255.255.252",
			want: []string{"hostname R1", " ip address 10.0.0.1 255.255.255.252"},
		},
		{
			name: "pipe without numeric prefix left alone",
			text: "description link | core",
			want: []string{"description link | core"},
		},
		{
			name: "blank lines preserved",
			text: "hostname R1\n\n!",
			want: []string{"hostname R1", "", "!"},
		},
		{
			name: "CRLF stripped",
			text: "hostname R1\r\n!",
			want: []string{"hostname R1", "!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLines(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLines() = %q, want %q", got, tt.want)
			}
		})
	}
}
