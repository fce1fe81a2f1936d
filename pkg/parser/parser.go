// pkg/parser/parser.go
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/NivBraz/student-aggregator/internal/models"
)

// ErrHTMLResponse is returned when an HTML page arrives where JSON was expected.
var ErrHTMLResponse = errors.New("unexpected HTML response")

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseStudents decodes the students endpoint payload
func (p *Parser) ParseStudents(content []byte) ([]models.Student, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty students payload")
	}
	if IsHTML(trimmed) {
		return nil, fmt.Errorf("%w: %s", ErrHTMLResponse, DescribeHTML(trimmed))
	}

	var students []models.Student
	if err := json.Unmarshal(trimmed, &students); err != nil {
		return nil, fmt.Errorf("error decoding students: %w", err)
	}
	return students, nil
}

// IsHTML reports whether content looks like an HTML document
func IsHTML(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	head := strings.ToLower(string(trimmed[:min(len(trimmed), 512)]))
	return strings.HasPrefix(head, "<!doctype html") || strings.Contains(head, "<html")
}

// DescribeHTML summarises an HTML page, typically a proxy or server error page,
// from its title and first heading
func DescribeHTML(content []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "unparseable HTML page"
	}
	// if its script or style ignore
	doc.Find("script, style").Remove()

	title := collapse(doc.Find("title").First().Text())
	heading := collapse(doc.Find("h1").First().Text())

	switch {
	case title != "" && heading != "" && title != heading:
		return title + ": " + heading
	case title != "":
		return title
	case heading != "":
		return heading
	}

	body := collapse(doc.Find("body").Text())
	if len(body) > 120 {
		body = body[:120] + "..."
	}
	if body == "" {
		return "empty HTML page"
	}
	return body
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
