package util

import (
	"strings"
	"unicode"
)

// 原始数据里的类别键大小写混乱，还带有 "– comments" 这类尾缀。
// 统一在问卷写入时规范化一次，聚合路径读到的都是干净键。
var categorySuffixes = []string{
	"- comments",
	"– comments",
	"— comments",
	"-comments",
}

// NormalizeCategory 压缩空白、去掉注释类尾缀并统一为小写。
func NormalizeCategory(s string) string {
	s = CollapseWhitespace(s)
	lower := strings.ToLower(s)
	for _, suffix := range categorySuffixes {
		if strings.HasSuffix(lower, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}
	return strings.ToLower(CollapseWhitespace(s))
}

// NormalizeText 聚类用的文本规范化：小写、去标点、压缩空白。
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return CollapseWhitespace(b.String())
}

// CollapseWhitespace 首尾去空白，连续空白折叠为单个空格。
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Levenshtein 经典两行 DP 编辑距离，按 rune 计。
// 调用方数据量小（单次聚类至多几百条），无需更快的实现。
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
