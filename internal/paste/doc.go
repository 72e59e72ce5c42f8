// Package paste recovers a listing code and price from free-form pasted text.
//
// Users copy listings out of chat groups, feed cards and screenshots' OCR
// output, so the text rarely has a fixed shape. The parser is a best-effort
// heuristic:
//
//   - Code: a bracketed run (【】 > [] > （） > () > 《》) wins outright;
//     otherwise the last code-like token; otherwise the whole text if short.
//   - Price: a ¥/￥ amount, an amount followed by a currency unit, or an amount
//     following a price label; otherwise the only standalone number.
//
// Parsing never fails. A field the parser cannot recognize is left empty and
// the caller keeps whatever the user had typed.
package paste
