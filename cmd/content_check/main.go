// content_check loads the site content the same way the service does and
// prints what it found. Exits with 1 when the content would not load.
package main

import (
	"fmt"
	"os"

	"github.com/2beens/portfolio/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	contentDir string
	verbose    bool
	watch      bool
)

var rootCmd = &cobra.Command{
	Use:   "content_check",
	Short: "Validate blog posts and case studies",
	Long: `content_check loads blog_posts.toml and case_studies.toml, runs the same
validation the service runs on startup, and prints per-category counts and
missing ids. Without --dir the content compiled into the binary is checked.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		if watch && contentDir == "" {
			return fmt.Errorf("--watch needs --dir")
		}
		if contentDir != "" {
			exists, err := pkg.PathExists(contentDir, true)
			if err != nil {
				return fmt.Errorf("check dir: %w", err)
			}
			if !exists {
				return fmt.Errorf("dir not found: %s", contentDir)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if watch {
			return watchDir(cmd.Context(), contentDir, cmd.OutOrStdout())
		}
		return runCheck(cmd.OutOrStdout(), contentFS(contentDir))
	},
}

func init() {
	rootCmd.Flags().StringVar(&contentDir, "dir", "", "dir with blog_posts.toml and case_studies.toml (default: embedded content)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log load warnings")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check whenever a file in --dir changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
