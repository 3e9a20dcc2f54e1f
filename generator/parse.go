package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrEmptyResponse is returned when the provider answered with nothing usable
var ErrEmptyResponse = errors.New("empty provider response")

var htmlMarkup = regexp.MustCompile(`(?i)<(p|div|h[1-6]|ul|ol|li|br|html|body|article|section)\b`)

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func parseList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("failed to parse list response: %w", err)
	}

	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyResponse
	}
	return cleaned, nil
}

func parseOutlines(raw string) ([]Outline, error) {
	var outlines []Outline
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &outlines); err != nil {
		return nil, fmt.Errorf("failed to parse outline response: %w", err)
	}
	if len(outlines) == 0 {
		return nil, ErrEmptyResponse
	}
	for i, outline := range outlines {
		if len(outline.Sections) == 0 {
			return nil, fmt.Errorf("outline %d has no sections", i)
		}
	}
	return outlines, nil
}

// parseText returns plain text. Providers sometimes answer with HTML even
// when asked not to; that is reduced to its block level text.
func parseText(raw string) (string, error) {
	text := stripCodeFence(raw)

	if htmlMarkup.MatchString(text) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
		if err != nil {
			return "", fmt.Errorf("failed to parse HTML response: %w", err)
		}

		var blocks []string
		doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
			if block := strings.TrimSpace(s.Text()); block != "" {
				blocks = append(blocks, block)
			}
		})
		if len(blocks) > 0 {
			text = strings.Join(blocks, "\n\n")
		} else {
			text = strings.TrimSpace(doc.Text())
		}
	}

	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
