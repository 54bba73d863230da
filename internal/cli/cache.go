package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/genoviz/pkg/cache"
)

// cacheCommand groups the artifact cache subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the rendered artifact cache",
	}
	cmd.AddCommand(cacheInfoCommand(), cacheClearCommand(), cachePathCommand())
	return cmd
}

// openFileCache opens the CLI cache directory. ok is false when nothing has
// been cached yet.
func openFileCache() (fc *cache.FileCache, ok bool, err error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, false, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	return fc, err == nil, err
}

func cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show how many artifacts are cached and how much space they use",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, ok, err := openFileCache()
			if err != nil {
				return err
			}
			if !ok {
				printInfo("Cache is empty")
				return nil
			}
			u, err := fc.Usage()
			if err != nil {
				return err
			}
			p := message.NewPrinter(language.English)
			printKeyValue("directory", fc.Dir())
			printKeyValue("entries", p.Sprintf("%d", u.Entries))
			printKeyValue("expired", p.Sprintf("%d", u.Expired))
			printKeyValue("size", formatBytes(p, u.Bytes))
			if u.Expired > 0 {
				printNextStep("Remove expired entries", appName+" cache clear --expired")
			}
			return nil
		},
	}
}

func cacheClearCommand() *cobra.Command {
	var expiredOnly bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, ok, err := openFileCache()
			if err != nil {
				return err
			}
			if !ok {
				printInfo("Cache is empty")
				return nil
			}
			remove, what := fc.Clear, "cached"
			if expiredOnly {
				remove, what = fc.Prune, "expired"
			}
			n, err := remove()
			if err != nil {
				return err
			}
			printSuccess("Removed %d %s %s", n, what, plural(n, "entry", "entries"))
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove expired or unreadable entries")
	return cmd
}

func cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// formatBytes renders n with a binary unit, e.g. "1.5 KiB".
func formatBytes(p *message.Printer, n int64) string {
	const unit = 1024
	if n < unit {
		return p.Sprintf("%d B", n)
	}
	v, exp := float64(n)/unit, 0
	for v >= unit && exp < 3 {
		v /= unit
		exp++
	}
	return p.Sprintf("%.1f %ciB", v, "KMGT"[exp])
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
