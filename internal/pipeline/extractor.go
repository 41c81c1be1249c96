package pipeline

import (
	"strings"

	"carsearch/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the marketplace results markup. These are structural facts
// about the document, not tunables, so they live here rather than in Rules.
const (
	selCardRoot  = "div.car_listitem"
	selInfoBlock = ".car_info"
	selStockNo   = ".stock_no"
	selHeadings  = "h2, h3"
)

// SignalSet holds the independently extracted per-field value sequences.
// Sequences legitimately differ in length: features and details only count
// blocks that produced a value, which is why alignment is positional.
type SignalSet struct {
	Images   []string
	Prices   []string
	Titles   []string
	Mileages []string
	Features []string
	StockIDs []string
	Details  []map[string]string
}

// ExtractSignals scans the whole document once per field and returns the raw
// value sequences. Each extraction is independent; no traversal state is
// shared between fields.
func (p *Pipeline) ExtractSignals(doc *goquery.Document) SignalSet {
	var s SignalSet

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if ok && strings.Contains(src, p.rules.PhotoMarker) {
			s.Images = append(s.Images, src)
		}
	})

	doc.Find("span").Each(func(_ int, span *goquery.Selection) {
		text := strings.TrimSpace(span.Text())
		if strings.Contains(text, p.rules.Currency.Source) {
			s.Prices = append(s.Prices, text)
		}
	})

	doc.Find(selHeadings).Each(func(_ int, h *goquery.Selection) {
		text := strings.TrimSpace(h.Text())
		if strings.Contains(text, p.rules.BrandToken) {
			s.Titles = append(s.Titles, text)
		}
	})

	doc.Find(selInfoBlock).Each(func(_ int, info *goquery.Selection) {
		s.Mileages = append(s.Mileages, extractMileage(info))
		s.Details = append(s.Details, extractDetails(info))
	})

	doc.Find("div").Each(func(_ int, div *goquery.Selection) {
		if matched := p.matchFeatures(div.Text()); matched != "" {
			s.Features = append(s.Features, matched)
		}
	})

	doc.Find(selStockNo).Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		text = strings.TrimSpace(strings.TrimPrefix(text, p.rules.StockPrefix))
		s.StockIDs = append(s.StockIDs, text)
	})

	return s
}

// ExtractCards is the card-scoped extraction mode: one root element per
// listing, every field queried relative to that root. Unlike the positional
// mode it cannot drift when a single field misses a card. Cards whose title
// does not carry the brand token are skipped, matching the brand filter of
// the positional mode.
func (p *Pipeline) ExtractCards(doc *goquery.Document) []model.ListingRecord {
	var records []model.ListingRecord

	doc.Find(selCardRoot).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(selHeadings).First().Text())
		if !strings.Contains(title, p.rules.BrandToken) {
			return
		}

		rec := model.ListingRecord{
			Title:      title,
			Image:      model.NotAvailable,
			Price:      model.NotAvailable,
			Mileage:    model.NotAvailable,
			Features:   model.NotAvailable,
			StockID:    model.NotAvailable,
			Details:    map[string]string{},
			Mechanical: model.NewMechanicalAttrs(),
		}

		card.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, ok := img.Attr("src")
			if ok && strings.Contains(src, p.rules.PhotoMarker) {
				rec.Image = src
				return false
			}
			return true
		})

		card.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			text := strings.TrimSpace(span.Text())
			if strings.Contains(text, p.rules.Currency.Source) {
				rec.Price = text
				return false
			}
			return true
		})

		if info := card.Find(selInfoBlock).First(); info.Length() > 0 {
			rec.Mileage = extractMileage(info)
			rec.Details = extractDetails(info)
		}

		if matched := p.matchFeatures(card.Text()); matched != "" {
			rec.Features = matched
		}

		if stock := card.Find(selStockNo).First(); stock.Length() > 0 {
			text := strings.TrimSpace(stock.Text())
			rec.StockID = strings.TrimSpace(strings.TrimPrefix(text, p.rules.StockPrefix))
		}

		records = append(records, rec)
	})

	return records
}

// extractMileage finds the heading labeled exactly "Mileage" inside an info
// block and returns the text of the next paragraph-like sibling.
func extractMileage(info *goquery.Selection) string {
	mileage := model.NotAvailable
	info.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.TrimSpace(h.Text()) != "Mileage" {
			return true
		}
		next := h.Next()
		if next.Is("p") {
			if text := strings.TrimSpace(next.Text()); text != "" {
				mileage = text
			}
		}
		return false
	})
	return mileage
}

// extractDetails parses every paragraph child of an info block that splits
// into exactly two parts on a colon. Blocks with no valid pairs yield an
// empty map, which still counts toward the details sequence.
func extractDetails(info *goquery.Selection) map[string]string {
	details := map[string]string{}
	info.Find("p").Each(func(_ int, para *goquery.Selection) {
		parts := strings.Split(para.Text(), ":")
		if len(parts) != 2 {
			return
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key != "" {
			details[key] = value
		}
	})
	return details
}

// matchFeatures scans text against the feature vocabulary and returns the
// distinct canonical matches joined in vocabulary order, or "" when nothing
// matches. Aliases count as a match for their canonical term.
func (p *Pipeline) matchFeatures(text string) string {
	var matched []string
	for _, term := range p.rules.FeatureVocabulary {
		if containsTerm(text, term) {
			matched = append(matched, term)
			continue
		}
		for _, alias := range p.rules.FeatureAliases[term] {
			if containsTerm(text, alias) {
				matched = append(matched, term)
				break
			}
		}
	}
	return strings.Join(matched, ", ")
}

func containsTerm(text, term string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}
