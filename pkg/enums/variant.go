package enums

import "fmt"

// Variant classifies catalog entries and quotes as imported stock or
// ready-to-ship stock.
type Variant string

const (
	VariantImported Variant = "imported"
	VariantReady    Variant = "ready"
)

// Variants lists every valid variant value.
func Variants() []Variant {
	return []Variant{VariantImported, VariantReady}
}

func (v Variant) String() string {
	return string(v)
}

func (v Variant) IsValid() bool {
	switch v {
	case VariantImported, VariantReady:
		return true
	}
	return false
}

// ParseVariant converts the raw string into a Variant or fails.
func ParseVariant(raw string) (Variant, error) {
	v := Variant(raw)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid variant %q", raw)
	}
	return v, nil
}
