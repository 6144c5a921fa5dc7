package plural_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/plural"
)

var rules = []struct {
	code  string
	forms int
	tests map[int]int
}{
	{"it_IT", 2, map[int]int{0: 1, 1: 0, 2: 1, 100: 1, -1: 0}},
	{"de", 2, map[int]int{0: 1, 1: 0, 5: 1}},
	{"ja_JP", 1, map[int]int{0: 0, 1: 0, 100: 0}},
	{"zh_CN", 1, map[int]int{1: 0, 7: 0}},
	{"fr_FR", 2, map[int]int{0: 0, 1: 0, 2: 1}},
	{"pt_BR", 2, map[int]int{0: 0, 1: 0, 2: 1}},
	{"pt_PT", 2, map[int]int{0: 1, 1: 0, 2: 1}},
	{"ru_RU", 3, map[int]int{1: 0, 11: 2, 14: 2, 21: 0, 34: 1, 5: 2}},
	{"uk", 3, map[int]int{1: 0, 2: 1, 5: 2}},
	{"cs", 3, map[int]int{1: 0, 2: 1, 4: 1, 5: 2, 10: 2}},
	{"pl", 3, map[int]int{1: 0, 0: 2, 5: 2, 12: 2, 22: 1, 103: 1}},
	{"lt", 3, map[int]int{0: 2, 1: 0, 2: 1, 11: 2, 12: 2, 22: 1}},
	{"lv", 3, map[int]int{1: 0, 21: 0, 11: 1, 0: 2}},
	{"ro", 3, map[int]int{1: 0, 0: 1, 10: 1, 20: 2, 30: 2}},
	{"ga", 3, map[int]int{1: 0, 2: 1, 3: 2, 300: 2}},
	{"mk", 3, map[int]int{1: 0, 21: 0, 2: 1, 5: 2}},
	{"sl", 4, map[int]int{0: 3, 1: 0, 101: 0, 2: 1, 3: 2, 204: 2}},
	{"mt", 4, map[int]int{1: 0, 0: 1, 10: 1, 11: 2, 19: 2, 20: 3}},
	{"cy", 4, map[int]int{1: 0, 2: 1, 8: 2, 11: 2, 3: 3}},
	{"ar", 6, map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 10: 3, 11: 4, 99: 4, 100: 5, 102: 5}},
	{"is", 2, map[int]int{1: 0, 21: 0, 11: 1, 2: 1}},
}

func TestForLanguage(t *testing.T) {
	for _, tc := range rules {
		t.Run(tc.code, func(t *testing.T) {
			r := plural.ForLanguage(tc.code)
			require.Equal(t, tc.forms, r.Forms())
			for n, want := range tc.tests {
				require.Equal(t, want, r.Index(n), fmt.Sprintf("n=%d", n))
			}
		})
	}
}

func TestForLanguage_Fallback(t *testing.T) {
	for _, code := range []string{"", "xx", "not a tag!", "en_US"} {
		r := plural.ForLanguage(code)
		require.Equal(t, "english", r.Name(), code)
		require.Equal(t, 2, r.Forms())
	}
}

func TestIndex_NeverExceedsForms(t *testing.T) {
	for _, tc := range rules {
		r := plural.ForLanguage(tc.code)
		for n := 0; n < 250; n++ {
			i := r.Index(n)
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, r.Forms())
		}
	}
}
