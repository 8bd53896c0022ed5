package extract

import "testing"

func TestParseNumbered(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[int]string
	}{
		{
			name: "plain",
			in:   "1. PGR\n2. 15/03/2024",
			want: map[int]string{1: "PGR", 2: "15/03/2024"},
		},
		{
			name: "parenthesis and dash",
			in:   "1) PCMSO\n2 - 01/02/2023",
			want: map[int]string{1: "PCMSO", 2: "01/02/2023"},
		},
		{
			name: "bold and labels",
			in:   "Segue a resposta:\n**1.** **Tipo do documento:** PGR\n2. Data de emissão: 10/01/2024\n",
			want: map[int]string{1: "PGR", 2: "10/01/2024"},
		},
		{
			name: "missing line",
			in:   "1. Outro",
			want: map[int]string{1: "Outro"},
		},
		{
			name: "first occurrence wins",
			in:   "1. PPR\n1. PCA",
			want: map[int]string{1: "PPR"},
		},
		{
			name: "no numbers",
			in:   "não foi possível ler o documento",
			want: map[int]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumbered(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseNumbered() = %v, want %v", got, tt.want)
			}
			for n, w := range tt.want {
				if got[n] != w {
					t.Errorf("answer %d = %q, want %q", n, got[n], w)
				}
			}
		})
	}
}

func TestParseNumbered_IgnoresIsoDateLines(t *testing.T) {
	got := ParseNumbered("2024-03-15")
	if len(got) != 0 {
		t.Errorf("expected no answers from a bare ISO date line, got %v", got)
	}
}
