package driven

// LocationLookup maps a raw, free-text author location to a country code.
// There is no fuzzy fallback: unmapped locations report ok=false.
type LocationLookup interface {
	Lookup(raw string) (code string, ok bool)
}
