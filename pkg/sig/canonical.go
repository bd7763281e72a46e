package sig

import "sort"

// Canonicalize serializes p as key=value pairs joined by '&', keys in
// bytewise order. Absent values are skipped. Keys and values are not
// escaped, so values containing '=' or '&' make the form ambiguous; the
// platform computes its side the same way.
func Canonicalize(p Params) []byte {
	keys := make([]string, 0, len(p))
	n := 0
	for k, v := range p {
		if v.IsAbsent() {
			continue
		}
		keys = append(keys, k)
		n += len(k) + len(v.text) + 2
	}
	// Go string comparison is bytewise, which is what the platform expects.
	sort.Strings(keys)

	result := make([]byte, 0, n)
	for i, k := range keys {
		if i > 0 {
			result = append(result, '&')
		}
		result = append(result, k...)
		result = append(result, '=')
		result = append(result, p[k].text...)
	}
	return result
}
