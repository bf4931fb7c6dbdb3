package ocr

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder heuristics over raw receipt text. The shapes cover the common
// Costco layouts (6-digit item number followed by the description, or an
// "Item: 123456: name" tag) until real layout analysis replaces them.
var (
	productLinePattern = regexp.MustCompile(`(\d{6})\s+(.+)`)
	itemTagPattern     = regexp.MustCompile(`(?i)Item[:\s]*(\d+)[\s:]+(.+)`)
	pricePattern       = regexp.MustCompile(`\$?(\d+\.\d{2})`)
)

// ExtractProductIDs scans raw receipt text for product-id/name pairs, keyed
// by product name.
func ExtractProductIDs(text string) map[string]string {
	products := make(map[string]string)
	for _, pattern := range []*regexp.Regexp{productLinePattern, itemTagPattern} {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			id := strings.TrimSpace(match[1])
			name := strings.TrimSpace(match[2])
			if id != "" && name != "" {
				products[name] = id
			}
		}
	}
	return products
}

// ExtractPrices scans raw receipt text for dollar amounts, keyed by the
// surrounding line of context.
func ExtractPrices(text string) map[string]float64 {
	prices := make(map[string]float64)
	for _, loc := range pricePattern.FindAllStringSubmatchIndex(text, -1) {
		price, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if err != nil || price <= 0 {
			continue
		}
		start := loc[0] - 50
		if start < 0 {
			start = 0
		}
		end := loc[0] + 50
		if end > len(text) {
			end = len(text)
		}
		prices[strings.TrimSpace(text[start:end])] = price
	}
	return prices
}
