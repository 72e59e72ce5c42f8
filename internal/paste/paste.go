package paste

import "strings"

// Result is the outcome of interpreting one paste. An empty field means the
// parser did not recognize it.
type Result struct {
	Code  string `json:"code,omitempty"`
	Price string `json:"price,omitempty"`
}

// HasCode reports whether a code was recognized.
func (r Result) HasCode() bool { return r.Code != "" }

// HasPrice reports whether a price was recognized.
func (r Result) HasPrice() bool { return r.Price != "" }

// Empty reports whether neither field was recognized.
func (r Result) Empty() bool { return !r.HasCode() && !r.HasPrice() }

// Parse extracts a listing code and price from raw pasted text. Both
// extractions run on the same prepared text and are independent of each other.
func Parse(raw string) Result {
	text := prepare(raw)

	var r Result
	if code, ok := extractCode(text); ok {
		r.Code = code
	}
	if price, ok := extractPrice(text); ok {
		r.Price = price
	}
	return r
}

// ExtractCode returns the listing code found in raw, if any.
func ExtractCode(raw string) (string, bool) {
	return extractCode(prepare(raw))
}

// ExtractPrice returns the normalized price found in raw, if any.
func ExtractPrice(raw string) (string, bool) {
	return extractPrice(prepare(raw))
}

// prepare normalizes line endings and trims surrounding whitespace.
func prepare(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
}

// Form holds the two listing inputs a paste can fill.
type Form struct {
	Code  string
	Price string
}

// ApplyPaste fills the form from raw pasted text. Only recognized fields are
// overwritten. It returns false when nothing was recognized, in which case the
// form is untouched and the caller should insert the raw text as typed.
func (f *Form) ApplyPaste(raw string) bool {
	r := Parse(raw)
	if r.Empty() {
		return false
	}
	if r.HasCode() {
		f.Code = r.Code
	}
	if r.HasPrice() {
		f.Price = r.Price
	}
	return true
}
