// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookmatch/internal/catalog"
	"github.com/pdiddy/bookmatch/internal/generate"
	"github.com/pdiddy/bookmatch/internal/logging"
	"github.com/pdiddy/bookmatch/internal/recommend"
	"github.com/pdiddy/bookmatch/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a catalog book for the given preferences",
	Long: `Recommend builds a prompt from the preferences, asks the configured
generative service for a book, and looks the answer up in the catalog.
If the first suggestion is not in the catalog it asks once more for a
different book. When neither is found it prints an apology.

The user is taken from --user, then the "user" config key
(BOOKMATCH_USER). A request without a user is rejected.`,
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	req := types.PreferenceRequest{}
	req.Genre, _ = cmd.Flags().GetString("genre")
	req.Expectation, _ = cmd.Flags().GetString("expectation")
	req.ReadingTime, _ = cmd.Flags().GetString("reading-time")
	req.CanFocus, _ = cmd.Flags().GetBool("can-focus")

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := generate.NewClient(cfg.AI)
	if err != nil {
		return err
	}

	ctx, _ := logging.WithRequestID(cmd.Context())
	orch := recommend.New(client, store, recommend.StaticIdentity(cfg.User))
	outcome, err := orch.Recommend(ctx, req)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	fmt.Println(outcome.Recommendation)
	if outcome.ImageURL != nil {
		fmt.Printf("\nKapak: %s\n", *outcome.ImageURL)
	}
	return nil
}

func init() {
	f := recommendCmd.Flags()
	f.String("genre", "", "preferred genre (required)")
	f.String("expectation", "", "what the reader hopes to get from the book (required)")
	f.String("reading-time", "", "available reading time (required)")
	f.Bool("can-focus", false, "reader can concentrate on long, dense text")
	f.String("user", "", "requesting user (overrides the user config key)")
	f.Bool("json", false, "print the outcome as JSON")

	viper.BindPFlag("user", f.Lookup("user"))

	rootCmd.AddCommand(recommendCmd)
}
