package service

import (
	"html"
	"regexp"
	"strings"
)

type ITextService interface {
	RemoveTags(input string) string
	RemoveLinks(input string) string
	ReduceToLength(input string, length int) string
	ClearAndReduce(input string, length int) string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	linkPattern = regexp.MustCompile(`https?://[^\s]+`)
)

func (ts *TextService) RemoveTags(input string) string {
	return tagPattern.ReplaceAllString(html.UnescapeString(input), "")
}

func (ts *TextService) RemoveLinks(input string) string {
	return linkPattern.ReplaceAllString(input, "")
}

// ReduceToLength cuts on word boundaries, never mid-word.
func (ts *TextService) ReduceToLength(input string, length int) string {
	var builder strings.Builder
	words := strings.Fields(input)
	totalLength := 0

	for i, word := range words {
		if totalLength+len(word) > length {
			break
		}
		if i > 0 {
			builder.WriteString(" ")
			totalLength++
		}
		builder.WriteString(word)
		totalLength += len(word)
	}
	return builder.String()
}

// ClearAndReduce is what product names and descriptions pass through
// before they are cached or sent to the remote service.
func (ts *TextService) ClearAndReduce(input string, length int) string {
	cleaned := ts.RemoveTags(input)
	cleaned = ts.RemoveLinks(cleaned)
	return ts.ReduceToLength(cleaned, length)
}
