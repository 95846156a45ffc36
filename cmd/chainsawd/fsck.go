package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuemby/chainsaw/pkg/chainsaw"
	"github.com/cuemby/chainsaw/pkg/metrics"
)

var fsckCmd = &cobra.Command{
	Use:   "fsck",
	Short: "Check a namespace for referential inconsistencies",
	Long: `fsck scans a namespace's data and label trees for gaps that should be
unreachable through normal Insert/Delete traffic, and reports them without
repairing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		namespace, _ := cmd.Flags().GetString("namespace")

		db, err := chainsaw.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		ns, err := db.OpenNamespace(namespace)
		if err != nil {
			return fmt.Errorf("failed to open namespace %q: %w", namespace, err)
		}

		report, err := ns.Prune()
		if err != nil {
			return fmt.Errorf("fsck failed: %w", err)
		}

		metrics.PruneFindingsTotal.WithLabelValues(namespace, "orphaned_object").Set(float64(len(report.OrphanedObjects)))
		metrics.PruneFindingsTotal.WithLabelValues(namespace, "orphaned_label").Set(float64(len(report.OrphanedLabels)))

		if report.Clean() {
			fmt.Printf("namespace %q is clean\n", namespace)
			return nil
		}

		fmt.Printf("namespace %q has inconsistencies:\n", namespace)
		if len(report.OrphanedObjects) > 0 {
			fmt.Printf("  orphaned objects (data with no data_labels entry): %v\n", report.OrphanedObjects)
		}
		if len(report.OrphanedLabels) > 0 {
			fmt.Printf("  orphaned labels (referenced but not recorded): %v\n", report.OrphanedLabels)
		}
		return nil
	},
}

func init() {
	fsckCmd.Flags().StringP("path", "P", "./chainsaw-data", "Database directory")
	fsckCmd.Flags().StringP("namespace", "n", "", "Namespace to check (required)")
	_ = fsckCmd.MarkFlagRequired("namespace")
}
