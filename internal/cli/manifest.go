package cli

import (
	"os"

	"github.com/spf13/cobra"

	prunekit "github.com/prunekit/prunekit-host-sdk"
	"github.com/prunekit/prunekit-host-sdk/extras"
	"github.com/prunekit/prunekit-host-sdk/manifest"
)

var (
	manifestRelease  bool
	manifestSrcDir   string
	manifestIncludes []string
	manifestExcludes []string
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Emit the package manifest as YAML",
	Args:  cobra.NoArgs,
	RunE:  runManifest,
}

var manifestValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a manifest file against the manifest schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestValidate,
}

func init() {
	manifestCmd.Flags().BoolVar(&manifestRelease, "release", prunekit.IsRelease, "emit the release package name")
	manifestCmd.Flags().StringVar(&manifestSrcDir, "src", "", "source tree to discover packaged files in")
	manifestCmd.Flags().StringSliceVar(&manifestIncludes, "include", []string{"**/*.py"}, "packaged file include globs")
	manifestCmd.Flags().StringSliceVar(&manifestExcludes, "exclude", nil, "packaged file exclude globs")
	manifestCmd.AddCommand(manifestValidateCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, _ []string) error {
	registry, closeHost, err := loadCommandRegistry(cmd.Context())
	if err != nil {
		return err
	}
	defer closeHost()

	id := manifest.Identity{
		IsRelease: manifestRelease,
		Version:   prunekit.Version,
	}
	m, err := manifest.Build(id, extras.Builtin(), registry)
	if err != nil {
		return err
	}

	if manifestSrcDir != "" {
		packages, err := manifest.DiscoverPackages(os.DirFS(manifestSrcDir), manifestIncludes, manifestExcludes)
		if err != nil {
			return err
		}
		m.Packages = packages
	}

	data, err := manifest.EncodeYAML(m)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}

func runManifestValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.DecodeYAML(data)
	if err != nil {
		return err
	}

	schemas, err := manifest.DefaultRegistry()
	if err != nil {
		return err
	}
	if err := manifest.NewValidator(schemas).Validate(manifest.ManifestKind, m); err != nil {
		return err
	}
	cmd.Printf("%s: valid\n", args[0])
	return nil
}
