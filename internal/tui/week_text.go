package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
)

var dayNames = [geometry.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weekText renders one schedule's week as plain text for the clipboard.
func weekText(st *block.State, scheduleID string) string {
	sc, ok := st.Schedule(scheduleID)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(sc.Name)
	b.WriteString("\n")

	for day := 0; day < geometry.DaysPerWeek; day++ {
		blocks := st.Blocks.OnDay(scheduleID, day)
		sort.SliceStable(blocks, func(i, j int) bool {
			return blocks[i].Start < blocks[j].Start
		})
		for _, tb := range blocks {
			line := fmt.Sprintf("%s  %s", dayNames[day], tb.Label())
			if n, ok := st.Notes[tb.ID]; ok {
				line += "  " + n.Content
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
