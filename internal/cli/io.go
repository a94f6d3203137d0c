package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/htmldoc"
)

func readPage(path string, stdin io.Reader) (*htmldoc.Document, error) {
	if path == "-" {
		return htmldoc.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return htmldoc.Parse(f)
}

func writePage(doc *htmldoc.Document, output string, stdout io.Writer) error {
	if output == "" || output == "-" {
		return doc.Render(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func reportChanges(w io.Writer, verb string, changes []field.Change) {
	if len(changes) == 0 {
		fmt.Fprintf(w, "%s: nothing to change\n", verb)
		return
	}
	for _, c := range changes {
		fmt.Fprintf(w, "%s %s: %s -> %s\n",
			verb,
			color.New(color.Bold).Sprint(c.ID),
			color.YellowString(c.From),
			color.GreenString(c.To),
		)
	}
}

func reportRejections(w io.Writer, rejected []field.Rejection) {
	for _, r := range rejected {
		fmt.Fprintf(w, "skipped %s=%s: %s\n", r.Key, r.Value, color.RedString(r.Reason.Error()))
	}
}
