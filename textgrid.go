package zedit

import (
	"fyne.io/fyne/v2/widget"
)

// TextGridRow renders paragraph line as a fyne TextGrid row. Overlapping
// highlights are composited over the configured default style in the order
// their ranges were added.
func (d *Document) TextGridRow(line int) (widget.TextGridRow, error) {
	if err := d.checkLine(line); err != nil {
		return widget.TextGridRow{}, err
	}
	p := d.paragraphs[line]
	row := widget.TextGridRow{
		Cells: make([]widget.TextGridCell, 0, p.Len()),
		Style: d.config.DefaultStyle.ToTextGridStyle(),
	}
	for _, run := range p.Runs() {
		if run.From == run.To {
			continue
		}
		layers := make([]Highlight, 0, len(run.Ranges))
		for _, id := range run.Ranges {
			if r, ok := d.ranges.Range(id); ok && r.Style != nil {
				layers = append(layers, r.Style)
			}
		}
		var style widget.TextGridStyle
		if len(layers) > 0 {
			style = ComposeStyles(d.config, d.config.DefaultStyle, layers...).ToTextGridStyle()
		}
		for _, r := range p.text[run.From:run.To] {
			row.Cells = append(row.Cells, widget.TextGridCell{Rune: r, Style: style})
		}
	}
	return row, nil
}
