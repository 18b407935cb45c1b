package cmd

import (
	"fmt"
	"strings"

	"hoteldesk/internal/cli/ui"
	"hoteldesk/internal/dashboard"
	"hoteldesk/internal/render"

	"github.com/spf13/cobra"
)

var runFields []string

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the actions available to the signed-in role",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := currentController()
		if err != nil {
			return err
		}
		fmt.Printf("\n--- %s ACTIONS ---\n", ctrl.Registry().Role())
		for _, d := range ctrl.Registry().Actions() {
			fmt.Printf("%-20s %s\n", d.ID, d.Description)
			for _, f := range d.Fields {
				req := ""
				if f.Required {
					req = " (required)"
				}
				opts := ""
				if len(f.Options) > 0 {
					opts = " [" + strings.Join(f.Options, ", ") + "]"
				}
				fmt.Printf("    --field %s=<%s>%s%s\n", f.Name, f.Kind, opts, req)
			}
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <action>",
	Short: "Run one action and print its result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := currentController()
		if err != nil {
			return err
		}
		values, err := parseFields(runFields)
		if err != nil {
			return err
		}

		snap, err := runAction(cmd, ctrl, args[0], values)
		if err != nil {
			return err
		}
		if snap.State == dashboard.ShowingError {
			return fmt.Errorf("%s", snap.Error)
		}
		fmt.Println(ui.RenderView(render.Build(snap.Result)))
		return nil
	},
}

func init() {
	runCmd.Flags().StringArrayVarP(&runFields, "field", "f", nil, "Form value as name=value (repeatable)")
	RootCmd.AddCommand(actionsCmd, runCmd)
}

func runAction(cmd *cobra.Command, ctrl *dashboard.Controller, id string, values map[string]string) (dashboard.Snapshot, error) {
	req, err := ctrl.Select(id)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	if req == nil {
		for name, value := range values {
			if err := ctrl.SetField(name, value); err != nil {
				ctrl.Cancel()
				return dashboard.Snapshot{}, err
			}
		}
		if req, err = ctrl.Submit(); err != nil {
			return dashboard.Snapshot{}, err
		}
	}
	return ctrl.Run(cmd.Context(), req), nil
}

func parseFields(raw []string) (map[string]string, error) {
	values := make(map[string]string, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --field %q: expected name=value", kv)
		}
		values[strings.TrimSpace(name)] = value
	}
	return values, nil
}
