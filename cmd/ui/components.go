package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/gitcore/pkg/objects"
	"github.com/utkarsh5026/gitcore/pkg/objects/tree"
)

// FormatKind colors an object kind name.
func FormatKind(kind objects.ObjectKind) string {
	switch kind {
	case objects.BlobKind:
		return BlobStyle.Render(kind.String())
	case objects.TreeKind:
		return TreeStyle.Render(kind.String())
	case objects.CommitKind:
		return CommitStyle.Render(kind.String())
	default:
		return kind.String()
	}
}

// KindIcon returns the icon shown next to entries of kind.
func KindIcon(kind objects.ObjectKind) string {
	switch kind {
	case objects.TreeKind:
		return IconTree
	case objects.CommitKind:
		return IconCommit
	default:
		return IconBlob
	}
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheckmark), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// ErrorMessage formats an error message in red
func ErrorMessage(message string) string {
	return fmt.Sprintf("%s %s", Red(IconCross), Red(message))
}

// WarningMessage formats a warning message in yellow
func WarningMessage(message string) string {
	return fmt.Sprintf("%s %s", Yellow(IconWarning), Yellow(message))
}

// InfoMessage formats an info message in blue
func InfoMessage(message string) string {
	return Blue(message)
}

// RenderTreeTable writes the entries of a tree as a table.
func RenderTreeTable(w io.Writer, entries []*tree.TreeEntry) error {
	table := tablewriter.NewWriter(w)
	table.Header("Mode", "Type", "Object", "Name")

	for _, e := range entries {
		name := e.Name()
		if e.IsDirectory() {
			name += "/"
		}
		if err := table.Append(
			Gray(e.Mode().String()),
			FormatKind(e.Kind()),
			Yellow(e.Hash().Short().String()),
			fmt.Sprintf("%s %s", KindIcon(e.Kind()), name),
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// ConfigRow is one line of a configuration listing.
type ConfigRow struct {
	Key    string
	Value  string
	Level  string
	Source string
}

// RenderConfigTable writes configuration entries as a table.
func RenderConfigTable(w io.Writer, rows []ConfigRow) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value", "Level", "Source")

	for _, r := range rows {
		if err := table.Append(Cyan(r.Key), r.Value, Magenta(r.Level), Gray(r.Source)); err != nil {
			return err
		}
	}

	return table.Render()
}
