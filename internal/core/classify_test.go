package core

import "testing"

func TestIsHVACEquipment(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Ar Condicionado Split 12000 BTUs", true},
		{"Evaporadora Hi-Wall 9k", true},
		{"Climatizador portátil", true},
		{"Unidade 18000 BTU/h", true},
		{"Suporte 12k", true},
		{"Cabo PP 3x2,5mm", false},
		{"Controle remoto universal", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsHVACEquipment(tc.in); got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClassifyBrand(t *testing.T) {
	cases := []struct {
		in    string
		brand string
		hvac  bool
	}{
		{"Split Gree Eco Garden 9000 BTUs", "Gree", true},
		{"Ar condicionado SAMSUNG WindFree", "Samsung", true},
		{"Split LG Dual Inverter 12000 BTUs", "LG", true},
		{"Split Elgin Eco Power 12k", "Elgin", true}, // must not match LG
		{"Split genérico 9000 BTUs", "Outras Marcas", true},
		{"Cabo PP 3x2,5mm", "", false},
	}
	for _, tc := range cases {
		brand, hvac := ClassifyBrand(tc.in)
		if hvac != tc.hvac || brand != tc.brand {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", tc.in, brand, hvac, tc.brand, tc.hvac)
		}
	}
}

func TestClassifyMachineType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Split Hi-Wall Gree 9000 BTUs", "High-Wall"},
		{"Evaporadora Cassete 4 vias 24000 BTUs", "Cassete"},
		{"Cassete K7 36000 BTUs", "Cassete"},
		{"Piso Teto 48000 BTUs", "Teto"},
		{"Multi Split Tri 3x9000 BTUs", "Multisplit"},
		{"Split 12000 BTUs frio", "High-Wall"},
		{"Condensadora 18000 BTUs", "High-Wall"}, // HVAC, no type keyword
		{"Cabo PP 3x2,5mm", "Outros"},
	}
	for _, tc := range cases {
		if got := ClassifyMachineType(tc.in); got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassifyPayment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Boleto bancário 3x", "Boleto"},
		{"PIX à vista", "PIX"},
		{"Visa 10x", "Cartão de Crédito"},
		{"Cartão de crédito Mastercard", "Cartão de Crédito"},
		{"Cartão de débito", "Débito"},
		{"Permuta", "Permuta"},
	}
	for _, tc := range cases {
		if got := ClassifyPayment(tc.in); got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}
