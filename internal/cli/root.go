package cli

import (
	"github.com/alexanderramin/tally/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tracking service.TrackingService
	Aliases  service.AliasService
	Review   service.ReviewService
	Billing  service.BillingService
	Send     service.SendService

	// DefaultConnector is used when a command does not name one.
	DefaultConnector string
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Personal time-tracking ledger",
	}

	root.AddCommand(
		newStartCmd(app),
		newContinueCmd(app),
		newStopCmd(app),
		newEditCmd(app),
		newCombineCmd(app),
		newRmCmd(app),
		newCommentCmd(app),
		newTagCmd(app),
		newStatusCmd(app),
		newReviewCmd(app),
		newSendCmd(app),
		newCheckCmd(app),
		newFrequentCmd(app),
		newAliasCmd(app),
		newTargetCmd(app),
	)

	return root
}
