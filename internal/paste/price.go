package paste

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/lingbao-market/client/internal/model"
)

const amount = `(\d{1,12}(?:\.\d{1,6})?)`

// labeledPrices are tried in order; the first pattern with a match wins.
var labeledPrices = []*regexp.Regexp{
	// ¥500, ￥ 500
	regexp.MustCompile(`[¥￥]\s*` + amount),
	// 500元, 500 块钱, 500rmb
	regexp.MustCompile(`(?i)` + amount + `\s*(?:块钱|元|块|塊|rmb)`),
	// 价格: 500, 售价500, price 500
	regexp.MustCompile(`(?i)(?:价格|售价|价钱|标价|要价|价|卖|出|price|asking|selling|cost)\s*[:：]?\s*` + amount),
}

var bareNumber = regexp.MustCompile(amount)

var commaReplacer = strings.NewReplacer(",", " ", "，", " ")

func extractPrice(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	text = commaReplacer.Replace(width.Fold.String(text))

	for _, re := range labeledPrices {
		if n, ok := firstLabeled(re, text); ok {
			return normalizePrice(n)
		}
	}

	var (
		only  string
		count int
	)
	for _, loc := range bareNumber.FindAllStringIndex(text, -1) {
		if isolated(text, loc[0], loc[1], true) {
			only = text[loc[0]:loc[1]]
			count++
		}
	}
	if count == 1 {
		return normalizePrice(only)
	}
	return "", false
}

// firstLabeled returns the amount captured by the first match of re that is
// not cut out of a longer number.
func firstLabeled(re *regexp.Regexp, text string) (string, bool) {
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if isolated(text, start, end, false) {
			return text[start:end], true
		}
	}
	return "", false
}

// isolated reports whether text[start:end] stands apart from neighbouring
// digits. When strict, ASCII letters and underscores also count as glue, so
// the 3 in "WAR3" is not a number.
func isolated(text string, start, end int, strict bool) bool {
	if start > 0 {
		c := text[start-1]
		if isDigit(c) || (strict && isWordByte(c)) {
			return false
		}
		if c == '.' && start > 1 && isDigit(text[start-2]) {
			return false
		}
	}
	if end < len(text) {
		c := text[end]
		if isDigit(c) || (strict && isWordByte(c)) {
			return false
		}
		if c == '.' && end+1 < len(text) && isDigit(text[end+1]) {
			return false
		}
	}
	return true
}

func isWordByte(c byte) bool {
	return isDigit(c) || c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

// normalizePrice floors s and accepts it only within the listing price range.
func normalizePrice(s string) (string, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	n := math.Floor(v)
	if n < model.MinPrice || n > model.MaxPrice {
		return "", false
	}
	return strconv.FormatInt(int64(n), 10), true
}
