package page

import (
	"fmt"
	"io"
	"reviewcrawler/internal/usecase"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type page struct {
	doc    *goquery.Document
	logger *zap.Logger
}

func NewPage(raw io.Reader, logger *zap.Logger) (usecase.Page, error) {
	doc, err := goquery.NewDocumentFromReader(raw)
	if err != nil {
		logger.Error("new page error", zap.Error(err))
		return nil, err
	}
	logger.Debug("new page initialize")
	return &page{doc: doc, logger: logger}, nil
}

// selector builds a goquery selector from a tag name and attribute
// predicates. A "class" predicate matches class tokens, any other
// attribute matches its exact value.
func selector(tag string, attrs map[string]string) string {
	var b strings.Builder
	b.WriteString(tag)
	for name, value := range attrs {
		if name == "class" {
			for _, class := range strings.Fields(value) {
				b.WriteString("." + class)
			}
			continue
		}
		fmt.Fprintf(&b, "[%s=%q]", name, value)
	}
	return b.String()
}

func (p *page) FindFirst(tag string, attrs map[string]string) (usecase.Element, bool) {
	s := p.doc.Find(selector(tag, attrs)).First()
	if s.Length() == 0 {
		return nil, false
	}
	return element{sel: s}, true
}

func (p *page) FindAll(tag string, attrs map[string]string) []usecase.Element {
	var out []usecase.Element
	p.doc.Find(selector(tag, attrs)).Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{sel: s})
	})
	return out
}

type element struct {
	sel *goquery.Selection
}

func (e element) Text() string {
	return e.sel.Text()
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) FindFirst(tag string, attrs map[string]string) (usecase.Element, bool) {
	s := e.sel.Find(selector(tag, attrs)).First()
	if s.Length() == 0 {
		return nil, false
	}
	return element{sel: s}, true
}

func (e element) FindAll(tag string, attrs map[string]string) []usecase.Element {
	var out []usecase.Element
	e.sel.Find(selector(tag, attrs)).Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{sel: s})
	})
	return out
}
