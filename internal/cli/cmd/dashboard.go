package cmd

import (
	"errors"

	"hoteldesk/internal/cli/ui"
	"hoteldesk/internal/dashboard"

	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in: run `hoteldesk login` first")

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard of the signed-in role",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDashboard()
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

func RunDashboard() error {
	ctrl, err := currentController()
	if err != nil {
		return err
	}
	sess, _ := Container.Session.Current()
	return ui.RunDashboard(ctrl, sess)
}

// currentController is the dashboard of the signed-in role. The terminal
// applies the same gate as the web console.
func currentController() (*dashboard.Controller, error) {
	sess, ok := Container.Session.Current()
	if !ok {
		return nil, errNotLoggedIn
	}
	ctrl, ok := Container.Controller(sess.Role)
	if !ok {
		return nil, errNotLoggedIn
	}
	return ctrl, nil
}
