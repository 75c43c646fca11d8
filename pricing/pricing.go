// Package pricing computes cart totals. Every age group is priced at the
// adult rate and selected extras are charged per head, a product decision
// carried over from the booking form.
package pricing

// Extra is an optional add-on attached to a cart line.
type Extra struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	Selected bool    `json:"selected"`
}

// Line is one excursion in the cart with its age-group counts and extras.
type Line struct {
	ExcursionSlug string  `json:"excursionId"`
	Name          string  `json:"name"`
	Image         string  `json:"image"`
	Date          string  `json:"date"`
	PriceMAD      float64 `json:"priceMad"`
	Baby          int     `json:"baby"`
	Child         int     `json:"child"`
	Adult         int     `json:"adult"`
	Extras        []Extra `json:"extras"`
	Total         float64 `json:"total"`
}

// Heads returns the total head count of a line.
func (l Line) Heads() int {
	return l.Baby + l.Child + l.Adult
}

// LineTotal prices a single line:
// basePrice*heads + sum(extra.price*heads) over selected extras.
func LineTotal(l Line) float64 {
	heads := float64(l.Heads())
	total := l.PriceMAD * heads
	for _, e := range l.Extras {
		if e.Selected {
			total += e.Price * heads
		}
	}
	return total
}

// QuoteTotal fills in each line's Total and returns the grand total.
func QuoteTotal(lines []Line) ([]Line, float64) {
	var grand float64
	for i := range lines {
		lines[i].Total = LineTotal(lines[i])
		grand += lines[i].Total
	}
	return lines, grand
}
