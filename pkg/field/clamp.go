package field

import "strconv"

// Change records a value rewritten by Clamp or ApplyQuery.
type Change struct {
	Index int
	ID    string
	From  string
	To    string
}

// Skip records a field Clamp left alone and why.
type Skip struct {
	Index  int
	ID     string
	Reason error
}

// ClampResult summarises a Clamp pass.
type ClampResult struct {
	Changed bool
	Changes []Change
	Skipped []Skip
}

// Clamp clips every numeric <input> to its declared bounds. Values above max
// become max, values below min become min; each side only applies when its
// attribute is present. Values are read with ParseNumber, so decimals,
// exponents and overflowing digits are compared by magnitude. Fields whose
// value has no leading number, or whose bounds are invalid, are left untouched
// and reported in Skipped. The input slice is not modified.
func Clamp(fields []Field) ([]Field, ClampResult) {
	out := Clone(fields)
	var result ClampResult

	for i := range out {
		f := &out[i]
		if !f.IsInput() {
			continue
		}

		value, err := f.Number()
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Index: i, ID: f.Key(), Reason: wrap(f.Key(), err)})
			continue
		}
		bounds, err := f.Bounds()
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Index: i, ID: f.Key(), Reason: wrap(f.Key(), err)})
			continue
		}

		clamped, changed := bounds.Clamp(value)
		if !changed {
			continue
		}
		next := strconv.Itoa(clamped)
		result.Changes = append(result.Changes, Change{Index: i, ID: f.Key(), From: f.Value, To: next})
		f.Value = next
	}

	result.Changed = len(result.Changes) > 0
	return out, result
}
