package core

import (
	"reflect"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  café Ação  ", "CAFE ACAO"},
		{"conecta", "CONECTA"},
		{"Refrigeração São José", "REFRIGERACAO SAO JOSE"},
		{"A  B   C", "A B C"},
		{"Loja-123!", "LOJA123"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsExcludedPartner(t *testing.T) {
	if !IsExcludedPartner("  Conecta ") {
		t.Fatal("expected house account to be excluded regardless of casing")
	}
	if IsExcludedPartner("Conecta Sul") {
		t.Fatal("names containing the house account are distinct partners")
	}
}

func TestPartnerOptions(t *testing.T) {
	sales := []Sale{
		{PartnerName: "zeta frio"},
		{PartnerName: "Águia Ar"},
		{PartnerName: "AGUIA AR"}, // duplicate after normalization
		{PartnerName: "Conecta"},  // house account
		{PartnerName: ""},
	}
	got := PartnerOptions(sales)
	want := []string{"Águia Ar", "zeta frio"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
