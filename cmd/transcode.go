package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/crosspostfields/model"
)

var (
	payloadPath string
	destination string
	isTerm      bool
)

func init() {
	transcodeCmd.Flags().StringVarP(&payloadPath, "payload", "p", "-", "payload JSON file, - for stdin")
	transcodeCmd.Flags().StringVarP(&destination, "destination", "d", "", "handle of the destination site")
	transcodeCmd.Flags().BoolVar(&isTerm, "term", false, "the payload is a term rather than a post")
	transcodeCmd.MarkFlagRequired("destination")
	rootCmd.AddCommand(transcodeCmd)
}

var transcodeCmd = &cobra.Command{
	Use:   "transcode",
	Short: "Transcodes a single payload for a destination",
	Long:  `Reads a post or term payload, rewrites its field values for the destination and prints the result`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readPayload(cmd.InOrStdin())
		if err != nil {
			return err
		}
		var payload model.Payload
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&payload); err != nil {
			return err
		}

		ctx := context.Background()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		dest := model.Destination{Handle: destination}
		process := app.extension.ProcessPostData
		if isTerm {
			process = app.extension.ProcessTermData
		}
		result, err := process(ctx, payload, dest)
		if err != nil {
			log.WithField("destination", destination).Errorf("transcoding failed: %v", err)
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	},
}

func readPayload(stdin io.Reader) ([]byte, error) {
	if payloadPath == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(payloadPath)
}
