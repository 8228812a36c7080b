package cmdfactory

import "strings"

// Splitb splits the provided string by the separator,
// but keeps together tokens that are enclosed in balanced char sequences.
func Splitb(s string, by string, bcs ...string) []string {
	tokens := strings.Split(s, by)
	result := make([]string, 0, len(tokens))
	var accum string
	var open bool
	for i, t := range tokens {
		if i > 0 && open {
			accum += by
		}
		accum += t
		open = false
		for _, c := range bcs {
			if strings.Count(accum, c)%2 != 0 {
				open = true
				break
			}
		}
		if open {
			continue
		}
		result = append(result, strings.TrimSpace(accum))
		accum = ""
	}
	// Unbalanced tail is still kept as the last token.
	if open {
		result = append(result, strings.TrimSpace(accum))
	}
	return result
}
