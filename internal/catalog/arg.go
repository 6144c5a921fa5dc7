package catalog

import (
	"sort"
	"strings"
)

// placeholder is one %N (or %LN) marker found in a string.
type placeholder struct {
	start, end int
	num        int
}

// Placeholders returns the markers %1..%99 in s in order of appearance.
// %L1 is reported as 1. %n and %Ln are not numbered markers.
func Placeholders(s string) []int {
	found := scan(s)
	out := make([]int, len(found))
	for i, p := range found {
		out[i] = p.num
	}
	return out
}

func scan(s string) []placeholder {
	var out []placeholder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		j := i + 1
		if j < len(s) && s[j] == 'L' {
			j++
		}
		if j >= len(s) || !isDigit(s[j]) {
			continue
		}
		num := int(s[j] - '0')
		j++
		if j < len(s) && isDigit(s[j]) {
			num = num*10 + int(s[j]-'0')
			j++
		}
		if num == 0 {
			continue
		}
		out = append(out, placeholder{start: i, end: j, num: num})
		i = j - 1
	}
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Arg replaces placeholders the way QString::arg does: the lowest-numbered
// marker present receives args[0] at every occurrence, the next lowest
// args[1], and so on. Substituted text is not scanned again. Extra args are
// ignored.
func Arg(text string, args ...string) string {
	if len(args) == 0 {
		return text
	}
	found := scan(text)
	if len(found) == 0 {
		return text
	}

	nums := make([]int, 0, len(found))
	seen := make(map[int]bool, len(found))
	for _, p := range found {
		if !seen[p.num] {
			seen[p.num] = true
			nums = append(nums, p.num)
		}
	}
	sort.Ints(nums)

	value := make(map[int]string, len(args))
	for i, num := range nums {
		if i >= len(args) {
			break
		}
		value[num] = args[i]
	}

	var b strings.Builder
	last := 0
	for _, p := range found {
		v, ok := value[p.num]
		if !ok {
			continue
		}
		b.WriteString(text[last:p.start])
		b.WriteString(v)
		last = p.end
	}
	b.WriteString(text[last:])
	return b.String()
}
