package norm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Canonical
	}{
		{"nr 06", NR06},
		{"NR-6", NR06},
		{"NR6", NR06},
		{"NR_35 Trabalho em Altura", NR35},
		{"Treinamento NR-10 Básico", NR10},
		{"11", NR11},
		{"Brigada de Incêndio Avançado", FireBrigade},
		{"curso de combate a incendio", FireBrigade},
		{"NR 23", FireBrigade},
		{"NR-23 Proteção contra incêndios", FireBrigade},
		{"IT-17", FireBrigade},
		{"IT 17", FireBrigade},
		{"IT17", FireBrigade},
		{"Instrução Técnica IT-17/2019", FireBrigade},
		{"resgate técnico NBR16710", TechnicalRescue},
		{"Resgate Tecnico Industrial", TechnicalRescue},
		{"ABNT NBR 16710", TechnicalRescue},
		{"Permissão de Trabalho - Emitente", WorkPermit},
		{"PT Requisitante", WorkPermit},
		{"ISO 45001", "ISO 45001"},
		{"  direção defensiva ", "DIREÇÃO DEFENSIVA"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			if !ok {
				t.Fatalf("Normalize(%q) returned no value", tt.in)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if got, ok := Normalize(in); ok {
			t.Errorf("Normalize(%q) = %q, expected no value", in, got)
		}
	}
}

func TestNormalize_PTIsWholeWord(t *testing.T) {
	// "PT" inside a word must not trigger the work permit rule.
	got, _ := Normalize("Captação de água")
	if got == WorkPermit {
		t.Errorf("unexpected work permit match for %q", "Captação de água")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"nr 06", "NR-35", "Brigada de Incêndio Avançado", "resgate técnico NBR16710",
		"PT emitente", "ISO 45001", "11", "direção defensiva", "NR 23", "nr-20 avançado ii",
		"espaço confinado", "NBR-16710 RESGATE TÉCNICO", "PERMISSÃO DE TRABALHO (PT)",
	}

	for _, in := range inputs {
		once, ok := Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) returned no value", in)
		}
		twice, ok := Normalize(string(once))
		if !ok || twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestRules_Order(t *testing.T) {
	want := []string{"fire-brigade", "technical-rescue", "work-permit", "numbered"}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("rule %d: expected %q, got %q", i, name, got[i].Name)
		}
	}
}

func TestNR(t *testing.T) {
	if NR(6) != NR06 {
		t.Errorf("expected NR-06, got %s", NR(6))
	}
	if NR(35) != NR35 {
		t.Errorf("expected NR-35, got %s", NR(35))
	}
}
