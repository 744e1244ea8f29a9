package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"furuth/services"
)

// RestoreOptions holds flags for the restore command.
type RestoreOptions struct {
	*RootOptions
	Force bool
	Yes   bool
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the product catalog from its backup",
		Long: `Restore the product catalog from the backup written on every save.

Without --force the backup is only offered when the catalog is empty while
the backup still holds products. The restore always asks for confirmation
unless --yes is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return restore(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "offer the backup even when the catalog is not empty")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func restore(cmd *cobra.Command, opts *RestoreOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	confirm := func(r services.LossReport) bool {
		if opts.Yes {
			return true
		}
		return askConfirm(cmd.InOrStdin(), out, fmt.Sprintf(
			"Restore %d products from the backup taken %s?", r.BackupCount, r.BackupTime.Format(time.RFC1123)))
	}

	report, err := a.catalog.DetectLoss(ctx, true, confirm)
	if err != nil {
		return err
	}
	if report.Suspected {
		if report.Restored {
			fmt.Fprintf(out, "Restored %d products from backup\n", report.BackupCount)
		} else {
			fmt.Fprintln(out, "Restore cancelled")
		}
		return nil
	}

	if !opts.Force {
		fmt.Fprintln(out, "No data loss detected; use --force to restore anyway")
		return nil
	}

	backup, ok, err := a.catalog.Backup(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return services.ErrNoBackup
	}
	if !confirm(services.LossReport{BackupCount: backup.Count, BackupTime: backup.Timestamp}) {
		fmt.Fprintln(out, "Restore cancelled")
		return nil
	}
	restored, err := a.catalog.RestoreFromBackup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Restored %d products from backup\n", restored.Count)
	return nil
}

func askConfirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
