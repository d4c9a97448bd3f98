// Package variant holds the dynamically typed value tree produced by the
// parser.
//
// A Value carries a Kind and exactly one payload matching it: nothing for
// Null, bool, int64, float64, string, []Value for List and map[string]Value
// for Table. The payload lives in a single field, so a Value can never hold
// two payloads at once, and every accessor checks the kind before touching it.
//
// Values behave as values: constructors copy the slices and maps they are
// given, AsList/AsTable hand out copies, and there is no mutation API. A
// parsed tree can therefore be shared between goroutines freely.
package variant
