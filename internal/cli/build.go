package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cwmars/mkdbupgrade/internal/config"
	"github.com/cwmars/mkdbupgrade/internal/files/filesystem"
	"github.com/cwmars/mkdbupgrade/internal/git"
	"github.com/cwmars/mkdbupgrade/internal/logging"
	"github.com/cwmars/mkdbupgrade/internal/review"
	"github.com/cwmars/mkdbupgrade/internal/services"
	"github.com/cwmars/mkdbupgrade/internal/tui"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

type buildFlagValues struct {
	fromBranch, fromVersion, toRef, toVersion string
	moves, prependFiles, appendFiles          []string
	prefix, outputDir, upgradeDir, repo       string
	clobber, review, dryRun, noAuditorUpdate  bool
	locate                                    []int
}

var buildFlags buildFlagValues

func registerBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVarP(&buildFlags.fromBranch, "from-branch", "f", "",
		"Reference to upgrade from, e.g. rel_3_7_4 or origin/rel_3_7_4 (required)")
	f.StringVarP(&buildFlags.fromVersion, "from-version", "F", "",
		"Version label to upgrade from (default: derived from --from-branch)")
	f.StringVarP(&buildFlags.toRef, "to-ref", "t", "",
		"Reference to upgrade to (default: the checked-out branch)")
	f.StringVarP(&buildFlags.toVersion, "to-version", "V", "",
		"Version label to upgrade to (default: derived from the target reference)")

	f.StringArrayVarP(&buildFlags.moves, "move", "m", nil,
		"Keep upgrade files whose path contains this text out of the main transaction\n"+
			"Can be specified multiple times")
	f.StringArrayVarP(&buildFlags.prependFiles, "prepend-file", "p", nil,
		"SQL file to copy before the upgrades (can be specified multiple times, order kept)")
	f.StringArrayVarP(&buildFlags.appendFiles, "append-file", "a", nil,
		"SQL file to copy after the upgrades (can be specified multiple times, order kept)")

	f.StringVarP(&buildFlags.prefix, "prefix", "P", "",
		"Text prepended to the output file name")
	f.StringVarP(&buildFlags.outputDir, "output-directory", "O", "",
		"Directory for the output file (default: "+mkdbupgrade.DefaultOutputDir+" in the repository)")
	f.StringVar(&buildFlags.upgradeDir, "upgrade-dir", "",
		"Upgrade directory inside the repository (default: "+mkdbupgrade.DefaultUpgradeDir+")")
	f.StringVar(&buildFlags.repo, "repo", "",
		"Path inside the git checkout (default: current directory)")

	f.BoolVarP(&buildFlags.clobber, "clobber", "C", false,
		"Overwrite the output file if it exists")
	f.BoolVarP(&buildFlags.review, "review", "r", false,
		"Open the written script in $MKDBUPGRADE_EDITOR, $VISUAL or $EDITOR")
	f.BoolVar(&buildFlags.dryRun, "dry-run", false,
		"Print the script to stdout and the plan to stderr without writing anything")
	f.BoolVar(&buildFlags.noAuditorUpdate, "no-auditor-update", false,
		"Leave out the auditor table refresh")
	f.IntSliceVar(&buildFlags.locate, "locate", nil,
		"Report which upgrade or side file a line of the output came from\n"+
			"Example: --locate 812 (as reported by psql)")

	_ = cmd.MarkFlagRequired("from-branch")
}

// buildBuildConfig merges the project config file and CLI flags into a
// BuildConfig. An empty flag value means "not given".
//
// Precedence: flag > .mkdbupgrade.yaml > built-in default. List flags are
// appended to the lists from the file. Paths given on the command line are
// taken from cwd; paths from the file are taken from the repository root.
func buildBuildConfig(repoRoot, cwd string, projectCfg *config.ProjectConfig) (mkdbupgrade.BuildConfig, error) {
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	}

	cfg := mkdbupgrade.BuildConfig{
		RepoRoot:      repoRoot,
		UpgradeDir:    firstNonEmpty(buildFlags.upgradeDir, projectCfg.UpgradeDir, mkdbupgrade.DefaultUpgradeDir),
		FromRef:       buildFlags.fromBranch,
		FromVersion:   buildFlags.fromVersion,
		ToRef:         buildFlags.toRef,
		ToVersion:     buildFlags.toVersion,
		Prefix:        firstNonEmpty(buildFlags.prefix, projectCfg.Prefix),
		OutputDir:     firstNonEmpty(projectCfg.OutputDir, mkdbupgrade.DefaultOutputDir),
		Overwrite:     buildFlags.clobber,
		DryRun:        buildFlags.dryRun,
		Review:        buildFlags.review,
		AuditorUpdate: true,
		ProductName:   firstNonEmpty(projectCfg.Product, mkdbupgrade.DefaultProductName),
	}

	if buildFlags.outputDir != "" {
		cfg.OutputDir = fromDir(cwd, buildFlags.outputDir)
	}
	if projectCfg.AuditorUpdate != nil {
		cfg.AuditorUpdate = *projectCfg.AuditorUpdate
	}
	if buildFlags.noAuditorUpdate {
		cfg.AuditorUpdate = false
	}

	cfg.MovePatterns = append(append([]string{}, projectCfg.Move...), buildFlags.moves...)
	cfg.PrependFiles = append([]string{}, projectCfg.Prepend...)
	for _, p := range buildFlags.prependFiles {
		cfg.PrependFiles = append(cfg.PrependFiles, fromDir(cwd, p))
	}
	cfg.AppendFiles = append([]string{}, projectCfg.Append...)
	for _, p := range buildFlags.appendFiles {
		cfg.AppendFiles = append(cfg.AppendFiles, fromDir(cwd, p))
	}

	if err := cfg.Validate(); err != nil {
		return mkdbupgrade.BuildConfig{}, err
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) so a hung git or editor stops
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	repo, err := git.Open(ctx, firstNonEmpty(buildFlags.repo, cwd))
	if err != nil {
		return err
	}
	logger.Verbose("Repository root: %s", repo.Root())

	projectCfg, err := loadProjectConfig(repo.Root())
	if err != nil {
		return err
	}

	cfg, err := buildBuildConfig(repo.Root(), cwd, projectCfg)
	if err != nil {
		return err
	}

	opts := []services.BuilderOption{toolVersionOption()}
	if editor := review.EditorFromEnv(os.Getenv); editor != "" {
		opts = append(opts, services.WithReviewer(review.NewEditorReviewer(editor, logger)))
	}
	builder := services.NewUpgradeBuilder(repo, filesystem.NewOSFileSystem(), logger, opts...)

	result, err := builder.Build(ctx, cfg)
	if result != nil {
		styler := tui.NewStyler(tui.IsInteractive(os.Stderr))
		if cfg.DryRun {
			fmt.Fprint(os.Stdout, result.Script)
			fmt.Fprintln(os.Stderr, renderPlan(result, styler))
		} else if result.Written {
			fmt.Fprintln(os.Stderr, renderSummary(result, styler))
		}
		if len(buildFlags.locate) > 0 {
			fmt.Fprint(os.Stderr, renderLocations(result, buildFlags.locate))
		}
	}
	return err
}

// toolVersionOption records the resolved build version in script headers.
func toolVersionOption() services.BuilderOption {
	v, _, _ := resolveVersionInfo()
	return services.WithToolVersion(v)
}

// loadProjectConfig loads .env and the project configuration from the
// repository root. Returns nil config if .mkdbupgrade.yaml does not exist.
func loadProjectConfig(repoRoot string) (*config.ProjectConfig, error) {
	_ = godotenv.Load(filepath.Join(repoRoot, ".env"))

	projectCfg, err := config.Load(repoRoot)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %v", config.ConfigFileName, mkdbupgrade.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func fromDir(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}
