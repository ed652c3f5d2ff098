/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package report renders problems, solutions and tables for terminals.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// Column limits; wider problems end with an ellipsis column.
const (
	MaxUtilityColumns = 7
	MaxValueColumns   = 9
	Ellipsis          = "..."
	TotalLabel        = "TOTAL"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")
)

// Renderer draws tables either with color and rounded borders or as plain
// ASCII for pipes and files.
type Renderer struct {
	styled bool
}

// NewRenderer returns a renderer. styled is usually whether stdout is a terminal.
func NewRenderer(styled bool) *Renderer {
	return &Renderer{styled: styled}
}

// UtilityMatrixRows returns the header and rows of the utility matrix:
// one row per category, one column per total allocation starting at the
// minimum.
func UtilityMatrixRows(p *core.Problem) ([]string, [][]string) {
	rem := max(p.ExtraUnits(), 0)
	shown := min(rem+1, MaxUtilityColumns)

	headers := []string{"Category"}
	for x := range shown {
		headers = append(headers, strconv.Itoa(p.MinPerCategory+x))
	}
	if rem+1 > shown {
		headers = append(headers, Ellipsis)
	}

	rows := make([][]string, 0, p.CategoryCount)
	for i := range p.CategoryCount {
		row := []string{p.CategoryName(i)}
		for x := range shown {
			row = append(row, FormatNumber(p.Utility(i, x), 0))
		}
		if rem+1 > shown {
			row = append(row, Ellipsis)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// ValueTableRows returns the header and rows of the value/decision table.
// Each cell reads "value (decision)".
func ValueTableRows(p *core.Problem, t *core.Tables) ([]string, [][]string) {
	shown := min(t.Rem+1, MaxValueColumns)

	headers := []string{"Category"}
	for r := range shown {
		headers = append(headers, fmt.Sprintf("r=%d", r))
	}
	if t.Rem+1 > shown {
		headers = append(headers, Ellipsis)
	}

	rows := make([][]string, 0, t.Categories())
	for i := range t.Categories() {
		row := []string{p.CategoryName(i)}
		for r := range shown {
			row = append(row, fmt.Sprintf("%s (%d)", FormatNumber(t.V[i][r], 1), t.D[i][r]))
		}
		if t.Rem+1 > shown {
			row = append(row, Ellipsis)
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// SolutionRows returns the header and rows of the solution table, ending
// with the TOTAL row.
func SolutionRows(p *core.Problem, s *core.Solution) ([]string, [][]string) {
	headers := []string{"Category", "Minimum", "Extra", "Total", "Utility"}
	rows := make([][]string, 0, len(s.Allocation)+1)
	for _, a := range s.Allocation {
		rows = append(rows, []string{
			a.CategoryName,
			strconv.Itoa(p.MinPerCategory),
			strconv.Itoa(a.ExtraUnits),
			strconv.Itoa(a.TotalUnits),
			FormatNumber(a.Utility, 2),
		})
	}
	rows = append(rows, []string{
		TotalLabel, "", strconv.Itoa(s.AllocatedExtraUnits()), strconv.Itoa(s.TotalUnits()), FormatNumber(s.OptimalValue, 2),
	})
	return headers, rows
}

// UtilityMatrix renders UtilityMatrixRows.
func (r *Renderer) UtilityMatrix(p *core.Problem) string {
	headers, rows := UtilityMatrixRows(p)
	return r.render(headers, rows, false)
}

// ValueTable renders ValueTableRows.
func (r *Renderer) ValueTable(p *core.Problem, t *core.Tables) string {
	headers, rows := ValueTableRows(p, t)
	return r.render(headers, rows, false)
}

// Solution renders SolutionRows.
func (r *Renderer) Solution(p *core.Problem, s *core.Solution) string {
	headers, rows := SolutionRows(p, s)
	return r.render(headers, rows, true)
}

// Summary describes the problem in a few lines.
func (r *Renderer) Summary(name string, p *core.Problem) string {
	var b strings.Builder
	title := fmt.Sprintf("Problem %s", name)
	if r.styled {
		title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	}
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "  total units:      %d\n", p.TotalUnits)
	fmt.Fprintf(&b, "  categories:       %d\n", p.CategoryCount)
	fmt.Fprintf(&b, "  minimum each:     %d\n", p.MinPerCategory)
	if p.MaxPerCategory != nil {
		fmt.Fprintf(&b, "  maximum each:     %d\n", *p.MaxPerCategory)
	}
	fmt.Fprintf(&b, "  extra units:      %d\n", p.ExtraUnits())
	return b.String()
}

func (r *Renderer) render(headers []string, rows [][]string, totalRow bool) string {
	t := table.New().Headers(headers...).Rows(rows...)
	if !r.styled {
		return t.Border(lipgloss.ASCIIBorder()).String()
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	first := cell.Bold(true)
	last := len(rows) - 1
	return t.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case totalRow && row == last:
				return first.Foreground(colorAccent)
			case col == 0:
				return first
			case rows[row][col] == Ellipsis:
				return cell.Foreground(colorMuted)
			default:
				return cell
			}
		}).
		String()
}
