package crawler

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"reviewcrawler/internal/usecase"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Strategy describes one way review text can be laid out on a page: the
// element to match and, when the text lives in a nested container, the
// tag to descend to. NestedTag empty means the element's own text.
type Strategy struct {
	Tag       string
	Attrs     map[string]string
	NestedTag string
}

// DefaultStrategies returns the known review layouts in priority order.
// The first strategy with at least one match wins; the rest are ignored.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Tag: "div", Attrs: map[string]string{"data-hook": "review-collapsed"}, NestedTag: "span"},
		{Tag: "span", Attrs: map[string]string{"data-hook": "review-body"}},
		{Tag: "span", Attrs: map[string]string{"class": "a-size-base review-text"}},
	}
}

// Config holds the crawl bounds for one Crawler instance.
type Config struct {
	StartURL string
	SiteRoot string // absolute locator hrefs are resolved against
	MaxPages int
	DelayMin time.Duration
	DelayMax time.Duration
}

type Crawler struct {
	r          usecase.Requester
	logger     *zap.Logger
	cfg        Config
	site       *url.URL
	strategies []Strategy

	// injected side effects, replaced in tests
	sleep   func(time.Duration)
	uniform func() float64

	reviews []string
}

func NewCrawler(r usecase.Requester, logger *zap.Logger, cfg Config) (*Crawler, error) {
	site, err := url.Parse(cfg.SiteRoot)
	if err != nil {
		return nil, fmt.Errorf("parse site root %s: %w", cfg.SiteRoot, err)
	}
	logger.Debug("new crawler initialize", zap.String("start_url", cfg.StartURL))
	return &Crawler{
		r:          r,
		logger:     logger,
		cfg:        cfg,
		site:       site,
		strategies: DefaultStrategies(),
		sleep:      time.Sleep,
		uniform:    rand.New(rand.NewSource(time.Now().UnixNano())).Float64,
	}, nil
}

// Run drives the fetch/extract/advance loop and returns every collected
// review in discovery order. A failed fetch is terminal: the crawl ends
// with whatever has been accumulated, it is not retried.
func (c *Crawler) Run(ctx context.Context) []string {
	current := c.cfg.StartURL
	pageNum := 1

	for current != "" && pageNum <= c.cfg.MaxPages {
		logMsg := fmt.Sprintf("processing page %d of %d", pageNum, c.cfg.MaxPages)
		c.logger.Info(logMsg)

		p, err := c.r.Get(ctx, current)
		if err != nil {
			logMsg := fmt.Sprintf("failed to fetch page %d. stopping", pageNum)
			c.logger.Error(logMsg, zap.Error(err))
			break
		}

		pageReviews := c.extractReviews(p)
		c.reviews = append(c.reviews, pageReviews...)
		logMsg = fmt.Sprintf("extracted %d reviews from page %d", len(pageReviews), pageNum)
		c.logger.Info(logMsg)

		next := c.nextPageURL(p)
		if next == "" || next == current {
			c.logger.Info("no more pages available or reached last page")
			break
		}
		current = next
		pageNum++
		if pageNum <= c.cfg.MaxPages {
			c.randomDelay()
		}
	}

	logMsg := fmt.Sprintf("crawl complete. collected %d reviews", len(c.reviews))
	c.logger.Info(logMsg)
	return c.reviews
}

// extractReviews applies the strategies in priority order and returns the
// non-empty trimmed texts of the first strategy that matches anything.
func (c *Crawler) extractReviews(p usecase.Page) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, s := range c.strategies {
		elements := p.FindAll(s.Tag, s.Attrs)
		if len(elements) == 0 {
			continue
		}
		logMsg := fmt.Sprintf("found %d reviews using strategy %s %v", len(elements), s.Tag, s.Attrs)
		c.logger.Info(logMsg)
		for _, el := range elements {
			var text string
			if s.NestedTag != "" {
				if inner, ok := el.FindFirst(s.NestedTag, nil); ok {
					text = strings.TrimSpace(inner.Text())
				}
			} else {
				text = strings.TrimSpace(el.Text())
			}
			if text != "" {
				out = append(out, text)
			}
		}
		break
	}
	if len(out) == 0 {
		c.logger.Warn("no reviews found on this page. the site may have changed its layout")
	}
	return out
}

// nextPageURL locates the next page of the listing, trying the "last
// pagination item" marker first and the pagination bar second. The result
// is always absolute; empty string means no further page.
func (c *Crawler) nextPageURL(p usecase.Page) string {
	if p == nil {
		return ""
	}
	if li, ok := p.FindFirst("li", map[string]string{"class": "a-last"}); ok {
		if a, ok := li.FindFirst("a", nil); ok {
			if href, ok := a.Attr("href"); ok && href != "" {
				return c.resolve(href)
			}
		}
	}
	if bar, ok := p.FindFirst("div", map[string]string{"id": "cm_cr-pagination_bar"}); ok {
		for _, a := range bar.FindAll("a", map[string]string{"class": "a-link-normal"}) {
			if !strings.Contains(a.Text(), "Next") {
				continue
			}
			if href, ok := a.Attr("href"); ok && href != "" {
				return c.resolve(href)
			}
		}
	}
	return ""
}

func (c *Crawler) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		c.logger.Warn("skipping unparseable next page href", zap.String("href", href))
		return ""
	}
	return c.site.ResolveReference(ref).String()
}

// randomDelay blocks for a duration drawn uniformly from the configured
// bound. Called only when advancing to another page.
func (c *Crawler) randomDelay() {
	d := c.cfg.DelayMin + time.Duration(c.uniform()*float64(c.cfg.DelayMax-c.cfg.DelayMin))
	logMsg := fmt.Sprintf("waiting for %.2f seconds", d.Seconds())
	c.logger.Info(logMsg)
	c.sleep(d)
}
