package ui

import (
	"io"
	"strings"

	"github.com/K0NGR3SS/slrledger/internal/models"
	"github.com/pterm/pterm"
)

// NewLogger builds the structured logger handed to the pipeline.
func NewLogger(w io.Writer, verbose, json bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	logger := pterm.DefaultLogger.WithWriter(w).WithLevel(level)
	if json {
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger
}

// Discard is a logger that drops everything.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard)
}

func PrintEntry(e models.Entry) {
	data := [][]string{
		{"Column", "Value"},
	}

	for i, v := range e.Values() {
		value := v
		switch {
		case v == "":
			value = pterm.FgGray.Sprint("(empty)")
		case v == models.NotApplicable:
			value = pterm.FgGray.Sprint(v)
		case strings.Contains(v, "Other (please specify below)"):
			value = pterm.FgYellow.Sprint(v)
		}
		data = append(data, []string{pterm.FgCyan.Sprint(models.Columns[i]), value})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// PrintVocabularyChanges lists values added to each vocabulary.
func PrintVocabularyChanges(added map[string][]string, order []string) {
	if len(added) == 0 {
		pterm.Info.Println("No vocabulary changes.")
		return
	}

	pterm.Warning.Println("Vocabulary extended:")
	for _, name := range order {
		for _, v := range added[name] {
			pterm.Printf("  %s %s\n", pterm.FgCyan.Sprint(name), pterm.FgGreen.Sprint("+ "+v))
		}
	}
}

// PrintDiff colours a formgen.Diff result.
func PrintDiff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			pterm.FgGreen.Println(line)
		case strings.HasPrefix(line, "-"):
			pterm.FgRed.Println(line)
		default:
			pterm.Println(line)
		}
	}
}
