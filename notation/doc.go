// Package notation implements LLSD's compact single-line notation
// encoding: parse and serialize between a byte slice and llsd.Value.
//
// A one-byte (or "b64"/"b16") prefix selects the variant, arrays and
// maps are comma-separated without trailing commas, and map keys are
// emitted as bare identifiers whenever legal, quoted otherwise.
package notation
