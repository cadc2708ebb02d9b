package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lacquerai/jsonl-split/internal/config"
	"github.com/lacquerai/jsonl-split/internal/engine"
	"github.com/lacquerai/jsonl-split/internal/style"
)

func printResult(w io.Writer, cfg *config.Config, result *engine.Result) error {
	switch cfg.Output {
	case config.OutputJSON:
		return style.PrintJSON(w, result)
	case config.OutputYAML:
		return style.PrintYAML(w, result)
	}

	if cfg.Quiet {
		return nil
	}

	counts := result.Counts()
	summary := fmt.Sprintf("Split %d records into train=%d valid=%d test=%d",
		result.TotalRecords, counts.Train, counts.Valid, counts.Test)
	if result.DryRun {
		style.Info(w, "Dry run: "+summary+", no files written")
	} else {
		style.Success(w, summary+" "+style.FormatDuration(result.Duration))
	}

	if cfg.Verbose {
		fmt.Fprintln(w, summaryTable(result))
	}
	return nil
}

func summaryTable(result *engine.Result) string {
	rows := make([][]string, 0, len(result.Subsets))
	for _, s := range result.Subsets {
		rows = append(rows, []string{string(s.Subset), style.FormatFilePath(s.Path), strconv.Itoa(s.Records)})
	}
	return style.RenderTable(
		[]string{"Subset", "Path", "Records"},
		rows,
		[]style.ColumnAlign{style.AlignLeft, style.AlignLeft, style.AlignRight},
	)
}
