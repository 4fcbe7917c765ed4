package cli

import (
	"github.com/spf13/cobra"

	"github.com/prunekit/prunekit-host-sdk/artifact"
	"github.com/prunekit/prunekit-host-sdk/artifact/filesystem"
	"github.com/prunekit/prunekit-host-sdk/artifact/oci"
	"github.com/prunekit/prunekit-host-sdk/artifact/signing"
	"github.com/prunekit/prunekit-host-sdk/netutil"
)

var (
	fetchCacheDir      string
	fetchRequireSigned bool
	fetchSigningKeys   []string
	fetchUsername      string
	fetchPassword      string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <stub>",
	Short: "Download a model artifact and cache it locally",
	Long: `Resolves a model stub such as "zoo:models/cv/resnet50:~1.2" to a
concrete version, pulls it from the registry, verifies its digest against the
pins file, and caches the model locally. The resolved version and digest are
recorded so later fetches of the same stub are reproducible.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCacheDir, "cache-dir", filesystem.DefaultCacheDir(), "model cache directory")
	fetchCmd.Flags().BoolVar(&fetchRequireSigned, "require-signature", false, "fail unless the artifact signature verifies")
	fetchCmd.Flags().StringSliceVar(&fetchSigningKeys, "signing-key", nil, "cosign public key to verify signatures against")
	fetchCmd.Flags().StringVar(&fetchUsername, "username", "", "registry username")
	fetchCmd.Flags().StringVar(&fetchPassword, "password", "", "registry password")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	var authProvider oci.AuthProvider = oci.AnonymousAuth{}
	if fetchUsername != "" {
		authProvider = oci.StaticAuth{Username: fetchUsername, Password: fetchPassword}
	}

	registry := oci.NewRegistryAdapter(authProvider,
		oci.WithHTTPClient(netutil.NewDownloadClient(netutil.DefaultRetryPolicy)))

	opts := []artifact.ServiceOption{
		artifact.WithPinsRepo(filesystem.NewPinsRepo(filesystem.DefaultPinsPath())),
	}
	if fetchRequireSigned {
		opts = append(opts,
			artifact.WithIntegrityService(artifact.NewIntegrityService(true)),
			artifact.WithSignatureVerifier(signing.NewCosignVerifier(fetchSigningKeys)))
	}

	svc := artifact.NewService(registry, filesystem.NewCache(fetchCacheDir), opts...)

	art, path, err := svc.Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("fetched %s\n", art.Reference())
	cmd.Printf("  digest: %s\n", art.Digest())
	cmd.Printf("  path:   %s\n", path)
	return nil
}
