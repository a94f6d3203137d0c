package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsync/pkg/field"
	"github.com/goliatone/go-formsync/pkg/formdef"
	"github.com/goliatone/go-formsync/pkg/prompt"
	"github.com/goliatone/go-formsync/pkg/queryparams"
)

func editCmd(g *globals) *cobra.Command {
	var (
		formID    string
		operation string
		action    string
	)

	cmd := &cobra.Command{
		Use:   "edit <forms.yaml|openapi.json>",
		Short: "Fill a form interactively and print the resulting query string",
		Long: `Prompt for every field of a form. Numeric fields are validated against their
bounds while typing. The resulting query string is printed on stdout.

Examples:
  formsync edit forms.yaml --form roll
  formsync edit openapi.json --operation rollDice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(cmd.Context(), args[0], formID, operation)
			if err != nil {
				return err
			}

			editor := prompt.NewEditor()
			fields, err := editor.Edit(cmd.Context(), form.Title, form.Fields)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			fields, result := field.Clamp(fields)
			reportChanges(cmd.ErrOrStderr(), "clamped", result.Changes)
			for _, skip := range result.Skipped {
				g.logger.Sugar().Debugw("clamp skipped field", "field", skip.ID, "reason", skip.Reason)
			}

			target := action
			if target == "" {
				target = form.Action
			}
			query := field.EncodeQuery(fields)
			if query != "" {
				target += "?" + query
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
			return err
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "form id inside a definition file")
	cmd.Flags().StringVar(&operation, "operation", "", "OpenAPI operation id; treats the file as an OpenAPI document")
	cmd.Flags().StringVar(&action, "action", "", "override the path printed before the query")
	return cmd
}

func loadForm(ctx context.Context, path, formID, operation string) (formdef.Form, error) {
	if operation != "" {
		return queryparams.FormFromFile(ctx, path, operation)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formdef.Form{}, err
	}
	forms, err := formdef.Parse(data, path)
	if err != nil {
		return formdef.Form{}, err
	}
	if formID == "" {
		if len(forms) == 1 {
			return forms[0], nil
		}
		return formdef.Form{}, fmt.Errorf("%s defines %d forms; pick one with --form", path, len(forms))
	}
	for _, form := range forms {
		if form.ID == formID {
			return form, nil
		}
	}
	return formdef.Form{}, fmt.Errorf("form %q not found in %s", formID, path)
}
