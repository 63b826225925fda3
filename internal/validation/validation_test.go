package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("email", "x@example.com", v)
	if v["name"] != "required" {
		t.Fatalf("expected name violation, got %+v", v)
	}
	if _, ok := v["email"]; ok {
		t.Fatalf("email should pass, got %+v", v)
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("kind", "supplier", []string{"customer", "supplier"}, v)
	OneOf("role", "boss", []string{"admin", "seller"}, v)
	OneOf("type", "", []string{"cash", "debt"}, v)
	if !v.Empty() && len(v) != 1 {
		t.Fatalf("unexpected violations: %+v", v)
	}
	if v["role"] != "unknown_value" {
		t.Fatalf("expected role violation, got %+v", v)
	}
}

func TestNonNegativeFloat(t *testing.T) {
	v := Violations{}
	NonNegativeFloat("price", -0.01, v)
	NonNegativeFloat("cost", 0, v)
	if v["price"] != "must_not_be_negative" {
		t.Fatalf("unexpected violations: %+v", v)
	}
	if _, ok := v["cost"]; ok {
		t.Fatalf("zero cost should pass, got %+v", v)
	}
}
