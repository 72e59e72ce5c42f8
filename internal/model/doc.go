// Package model defines the data types exchanged with the marketplace API.
//
// Conventions:
//   - Codes: uppercase letters and digits, 3-12 runes once normalized
//   - Prices: whole units in [1, 999]; the API carries them as JSON numbers
//   - Timestamps: int64 milliseconds since Unix epoch
//   - IDs: opaque strings assigned by the API
package model
