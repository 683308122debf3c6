package mapping

import (
	"strings"
	"unicode"
)

// jaroWinkler computes Jaro-Winkler similarity with the standard 0.1 prefix
// scaling over at most 4 leading characters. Identical strings short-circuit
// to 1.
func jaroWinkler(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}

	matchDistance := maxInt(len(r1), len(r2))/2 - 1
	m1 := make([]bool, len(r1))
	m2 := make([]bool, len(r2))
	matches := 0

	for i := range r1 {
		start := maxInt(0, i-matchDistance)
		end := minInt(i+matchDistance+1, len(r2))
		for j := start; j < end; j++ {
			if m2[j] || r1[i] != r2[j] {
				continue
			}
			m1[i] = true
			m2[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	k := 0
	for i := range r1 {
		if !m1[i] {
			continue
		}
		for !m2[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	jaro := (float64(matches)/float64(len(r1)) +
		float64(matches)/float64(len(r2)) +
		(float64(matches)-float64(transpositions)/2)/float64(matches)) / 3

	prefix := 0
	for i := 0; i < minInt(minInt(len(r1), len(r2)), 4); i++ {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*0.1*(1-jaro)
}

// tokenOverlap scores the shared-word fraction of two snake_case or
// space-separated field names, damped to a 0.7 ceiling. Returns the score
// and the shared words.
func tokenOverlap(s1, s2 string) (float64, []string) {
	split := func(s string) []string {
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == '_' || unicode.IsSpace(r)
		})
	}
	w1 := split(s1)
	w2 := split(s2)
	if len(w1) == 0 || len(w2) == 0 {
		return 0, nil
	}

	in2 := make(map[string]bool, len(w2))
	for _, w := range w2 {
		in2[w] = true
	}
	var common []string
	for _, w := range w1 {
		if in2[w] {
			common = append(common, w)
		}
	}
	if len(common) == 0 {
		return 0, nil
	}
	return float64(len(common)) / float64(maxInt(len(w1), len(w2))) * 0.7, common
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
