package pie

import (
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
)

// Hover emphasises slice i and shows its tooltip.
func (c *Chart) Hover(i int) ([]interact.Patch, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	content := c.TooltipHTML(i)
	c.tooltip.Show(content)
	return c.attrs.Apply([]interact.Patch{
		{Target: c.arcID(i), Attr: "stroke-width", Value: HoverStrokeWidth, Duration: HoverDuration},
		{Target: c.tooltip.NodeID(), Attr: "innerHTML", Value: content},
		{Target: c.tooltip.NodeID(), Attr: "opacity", Value: "1", Duration: TooltipDuration},
	}), nil
}

// Unhover restores slice i and hides the tooltip.
func (c *Chart) Unhover(i int) ([]interact.Patch, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	c.tooltip.Hide()
	return c.attrs.Apply([]interact.Patch{
		{Target: c.arcID(i), Attr: "stroke-width", Value: StrokeWidth, Duration: HoverDuration},
		{Target: c.tooltip.NodeID(), Attr: "opacity", Value: "0", Duration: TooltipDuration},
	}), nil
}

func (c *Chart) checkIndex(i int) error {
	if i < 0 || i >= len(c.counts) {
		return errors.New(errors.ErrCodeInvalidEvent, "slice index %d out of range [0, %d)", i, len(c.counts))
	}
	return nil
}
