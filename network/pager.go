package network

// PageStep is the fixed "Show More" increment used by both recommendation
// buckets.
const PageStep = 3

// Pager tracks how many records of a bucket are revealed. It resets to the
// initial size whenever any upstream input changes.
type Pager struct {
	visible int
}

// NewPager returns a pager at the initial size.
func NewPager() Pager { return Pager{visible: PageStep} }

// Visible clamps the revealed count to the bucket size.
func (p Pager) Visible(total int) int {
	if p.visible <= 0 {
		return min(PageStep, total)
	}
	return min(p.visible, total)
}

// More reveals the next increment.
func (p *Pager) More() {
	if p.visible <= 0 {
		p.visible = PageStep
	}
	p.visible += PageStep
}

// Reset returns to the initial size.
func (p *Pager) Reset() { p.visible = PageStep }
