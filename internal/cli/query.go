package cli

import (
	"fmt"
	"log"

	"codyplay/internal/api"
	"codyplay/internal/catalog"
	"codyplay/internal/jsonutil"

	"github.com/spf13/cobra"
)

func newQueryCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newQueryCommand(a, api.OpLowestPrice, "Lowest priced brand for every category and the total"),
		newQueryCommand(a, api.OpBrandSet, "Single brand with the cheapest complete set"),
		newCategoryCommand(a),
		newQueryCommand(a, api.OpBrands, "List all brands"),
		newQueryCommand(a, api.OpProducts, "List all products"),
	}
}

func newQueryCommand(a *app, op api.Operation, long string) *cobra.Command {
	return &cobra.Command{
		Use:   op.String(),
		Short: op.Title(),
		Long:  long + ".\n\nRuns GET " + op.Path("") + " once and prints the indented response.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.query(cmd, op, "")
		},
	}
}

func newCategoryCommand(a *app) *cobra.Command {
	names := make([]string, 0, len(catalog.All()))
	for _, c := range catalog.All() {
		names = append(names, c.String())
	}
	return &cobra.Command{
		Use:       "category CATEGORY",
		Short:     api.OpCategory.Title(),
		Long:      "Cheapest and most expensive brand for one category.\n\nCATEGORY is an enum name (case-insensitive) or its Korean display name.",
		Example:   "  codyplay category PANTS\n  codyplay category 바지",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Parse(args[0])
			if err != nil {
				return err
			}
			return a.query(cmd, api.OpCategory, cat)
		},
	}
}

// query runs one operation and prints its payload. Non-2xx responses are
// printed like any other payload; the status goes to stderr.
func (a *app) query(cmd *cobra.Command, op api.Operation, cat catalog.Category) error {
	log.SetOutput(a.logOutput(cmd))

	client, shutdown, err := a.newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	res, err := client.Do(cmd.Context(), op, cat)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: HTTP %d\n", op, res.StatusCode)
	}
	fmt.Fprintln(cmd.OutOrStdout(), jsonutil.MustIndent(res.Payload))
	return nil
}
