// README: validate and enrich commands over itinerary JSON files.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"voyage/internal/config"
	"voyage/internal/modules/imagesearch"
	"voyage/internal/modules/itinerary"
)

var ValidateCmd = &cobra.Command{
	Use:     "validate [file]",
	Aliases: []string{"v"},
	Short:   "Repair an itinerary JSON file",
	Long:    `Reads an itinerary JSON file ("-" for stdin), fills missing days and defaults, and prints the result.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		it, err := readItinerary(args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), Format, itinerary.Validate(it))
	},
}

var EnrichCmd = &cobra.Command{
	Use:     "enrich [file]",
	Aliases: []string{"e"},
	Short:   "Repair an itinerary and attach images",
	Long: `Like validate, then looks up one image per hotel and activity through
Google Places (GOOGLE_MAPS_API_KEY). Without a key every entity gets the default image.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		it, err := readItinerary(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.LoadImages()
		if err != nil {
			return err
		}

		var searcher itinerary.ImageSearcher
		if cfg.MapsKey != "" {
			places, err := imagesearch.NewPlacesSearcher(cfg.MapsKey, cfg.PhotoBaseURL, cfg.MaxWidth)
			if err != nil {
				return err
			}
			searcher = places
		}
		enricher := itinerary.NewEnricher(searcher, cfg.Concurrency)
		return render(cmd.OutOrStdout(), Format, enricher.Enrich(cmd.Context(), itinerary.Validate(it)))
	},
}

func readItinerary(path string) (*itinerary.Itinerary, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var it itinerary.Itinerary
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &it, nil
}
